package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en una sucursal.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Stock         int             `json:"stock"`
	MinStockLevel int             `json:"min_stock_level"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BranchID      string          `json:"branch_id"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Stock         int             `json:"stock"`
	MinStockLevel int             `json:"min_stock_level"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BranchID      string          `json:"branch_id"`
	LowStock      bool            `json:"low_stock"`
}

// ProductListResponse listado paginado de productos visibles para el caller.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
