package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Pertenece a exactamente una
// sucursal. Stock solo se muta por delta (la venta decrementa); no existe
// operación de borrado de productos.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"` // precio de venta
	Cost          decimal.Decimal `json:"cost"`  // costo de adquisición
	Stock         int             `json:"stock"` // entero >= 0
	MinStockLevel int             `json:"minStockLevel"`
	ExpiryDate    time.Time       `json:"expiryDate"`
	BranchID      string          `json:"branchId"`
}

// IsLowStock indica stock en o por debajo del umbral mínimo. Stock cero es el
// estado bajo terminal; no hay transición "crítica" más allá de cero.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStockLevel
}

// ExpiresWithin indica si el producto vence dentro de los próximos days días
// y aún no está vencido.
func (p *Product) ExpiresWithin(now time.Time, days int) bool {
	remaining := p.ExpiryDate.Sub(now)
	return remaining > 0 && remaining < time.Duration(days)*24*time.Hour
}
