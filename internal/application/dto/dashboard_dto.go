package dto

import "github.com/shopspring/decimal"

// BranchPerformanceDTO agregados financieros de una sucursal, recalculados
// desde cero en cada llamada.
type BranchPerformanceDTO struct {
	BranchID         string          `json:"branch_id"`
	Revenue          decimal.Decimal `json:"revenue"`
	COGS             decimal.Decimal `json:"cogs"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	StockValue       decimal.Decimal `json:"stock_value"`
	LowStockCount    int             `json:"low_stock_count"`
	ExpiringCount    int             `json:"expiring_count"` // vence en los próximos 60 días
	TransactionCount int             `json:"transaction_count"`
}

// ExecutiveRowDTO fila del análisis ejecutivo por sucursal: sobre el
// desempeño bruto aplica la política de gastos operativos (fijo más variable
// por transacción) para llegar al neto.
type ExecutiveRowDTO struct {
	BranchID            string          `json:"branch_id"`
	BranchName          string          `json:"branch_name"`
	Revenue             decimal.Decimal `json:"revenue"`
	COGS                decimal.Decimal `json:"cogs"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	OperationalExpenses decimal.Decimal `json:"operational_expenses"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	Margin              decimal.Decimal `json:"margin"` // neto / ingresos, 0 si no hay ingresos
}

// ExecutiveSummaryDTO análisis ejecutivo del alcance completo del caller.
type ExecutiveSummaryDTO struct {
	Rows []ExecutiveRowDTO `json:"rows"`
}

// ProductSalesDTO ventas acumuladas de un producto.
type ProductSalesDTO struct {
	ProductID    string          `json:"product_id"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
