package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItem es una línea de venta con precio congelado al momento del
// commit: cambios de precio posteriores no alteran transacciones históricas.
type TransactionItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Estados de sincronización de stock de una transacción. Una venta cuyo
// decremento de inventario no pudo persistirse queda marcada para
// conciliación en vez de divergir en silencio.
const (
	StockSyncOK     = "OK"
	StockSyncFailed = "STOCK_SYNC_FAILED"
)

// Transaction es una venta confirmada en punto de venta. Inmutable una vez
// creada (salvo StockSync); Total se almacena, nunca se recalcula, para
// mantener estables los reportes históricos.
type Transaction struct {
	ID           string            `json:"id"`
	Date         time.Time         `json:"date"`
	Total        decimal.Decimal   `json:"total"`
	BranchID     string            `json:"branchId"`
	PharmacistID string            `json:"pharmacistId"`
	StockSync    string            `json:"stockSync,omitempty"`
	Items        []TransactionItem `json:"items"`
}
