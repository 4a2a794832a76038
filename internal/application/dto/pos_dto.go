package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest una línea del carrito en el checkout.
type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest carrito completo a confirmar.
type CheckoutRequest struct {
	Items []CartLineRequest `json:"items"`
}

// TransactionItemResponse línea de una venta confirmada.
type TransactionItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// TransactionResponse venta confirmada.
type TransactionResponse struct {
	ID           string                    `json:"id"`
	Date         time.Time                 `json:"date"`
	Total        decimal.Decimal           `json:"total"`
	BranchID     string                    `json:"branch_id"`
	PharmacistID string                    `json:"pharmacist_id"`
	Items        []TransactionItemResponse `json:"items"`
}

// TransactionListResponse ventas visibles para el caller.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
}
