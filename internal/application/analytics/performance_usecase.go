// Package analytics contiene los casos de uso de agregación financiera:
// desempeño por sucursal y análisis ejecutivo del alcance del caller.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// Política de gastos operativos por sucursal: componente fijo más variable
// por transacción. Es un insumo de reporte, no parte del agregado bruto.
var (
	opExpenseBase  = decimal.NewFromInt(2000)
	opExpensePerTx = decimal.NewFromInt(5)

	// Costo estimado cuando el producto de una línea histórica ya no existe:
	// 50% del precio de venta. Degradación deliberada, no garantía de
	// integridad.
	missingProductCostFactor = decimal.NewFromFloat(0.5)
)

// Ventana de alerta de vencimiento del agregado por sucursal.
const expiryWindowDays = 60

// PerformanceUseCase calcula agregados financieros desde los registros
// crudos. Sin estado incremental: cada llamada recalcula desde cero, lo que
// sirve además como oráculo de correctitud para cualquier ledger futuro.
type PerformanceUseCase struct {
	store repository.EntityStore
}

// NewPerformanceUseCase construye el caso de uso.
func NewPerformanceUseCase(store repository.EntityStore) *PerformanceUseCase {
	return &PerformanceUseCase{store: store}
}

// BranchPerformance calcula ingresos, COGS, utilidad bruta, valor de stock,
// conteos de stock bajo y de próximos a vencer, y conteo de transacciones de
// una sucursal.
func (uc *PerformanceUseCase) BranchPerformance(branchID string) (*dto.BranchPerformanceDTO, error) {
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}
	perf := computePerformance(branchID, products, txs)
	return &perf, nil
}

// computePerformance es la reducción pura sobre listas ya recuperadas.
// productos de TODAS las sucursales: el lookup de costo por línea histórica
// no se limita a la sucursal de la transacción.
func computePerformance(branchID string, products []entity.Product, txs []entity.Transaction) dto.BranchPerformanceDTO {
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	revenue := decimal.Zero
	cogs := decimal.Zero
	txCount := 0
	for _, t := range txs {
		if t.BranchID != branchID {
			continue
		}
		txCount++
		revenue = revenue.Add(t.Total)
		for _, item := range t.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			if p, ok := byID[item.ProductID]; ok {
				cogs = cogs.Add(p.Cost.Mul(qty))
			} else {
				cogs = cogs.Add(item.Price.Mul(qty).Mul(missingProductCostFactor))
			}
		}
	}

	stockValue := decimal.Zero
	lowStock := 0
	expiring := 0
	now := time.Now()
	for _, p := range products {
		if p.BranchID != branchID {
			continue
		}
		stockValue = stockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.IsLowStock() {
			lowStock++
		}
		if p.ExpiresWithin(now, expiryWindowDays) {
			expiring++
		}
	}

	return dto.BranchPerformanceDTO{
		BranchID:         branchID,
		Revenue:          revenue,
		COGS:             cogs,
		GrossProfit:      revenue.Sub(cogs),
		StockValue:       stockValue,
		LowStockCount:    lowStock,
		ExpiringCount:    expiring,
		TransactionCount: txCount,
	}
}

// ExecutiveSummary construye el análisis ejecutivo por sucursal del alcance
// del caller: sobre el desempeño bruto aplica gastos operativos
// (2000 + 5 por transacción) para obtener neto, gastos totales y margen.
func (uc *PerformanceUseCase) ExecutiveSummary(caller scope.Caller) (*dto.ExecutiveSummaryDTO, error) {
	branches, err := uc.store.Branches()
	if err != nil {
		return nil, err
	}
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}

	visible := scope.Branches(caller, branches)
	rows := make([]dto.ExecutiveRowDTO, 0, len(visible))
	for _, b := range visible {
		perf := computePerformance(b.ID, products, txs)
		opEx := opExpenseBase.Add(opExpensePerTx.Mul(decimal.NewFromInt(int64(perf.TransactionCount))))
		net := perf.GrossProfit.Sub(opEx)
		margin := decimal.Zero
		if perf.Revenue.GreaterThan(decimal.Zero) {
			margin = net.Div(perf.Revenue).Round(4)
		}
		rows = append(rows, dto.ExecutiveRowDTO{
			BranchID:            b.ID,
			BranchName:          b.Name,
			Revenue:             perf.Revenue,
			COGS:                perf.COGS,
			GrossProfit:         perf.GrossProfit,
			OperationalExpenses: opEx,
			TotalExpenses:       perf.COGS.Add(opEx),
			NetProfit:           net,
			Margin:              margin,
		})
	}
	return &dto.ExecutiveSummaryDTO{Rows: rows}, nil
}

// ProductSales acumula unidades vendidas e ingresos de un producto sobre
// todas las transacciones registradas. Un producto fuera del alcance del
// caller (o inexistente) responde ErrNotFound: su existencia no se revela.
func (uc *PerformanceUseCase) ProductSales(caller scope.Caller, productID string) (*dto.ProductSalesDTO, error) {
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	found := false
	for _, p := range products {
		if p.ID == productID && scope.Allows(caller, p.BranchID) {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}
	sold := 0
	revenue := decimal.Zero
	for _, t := range txs {
		for _, item := range t.Items {
			if item.ProductID != productID {
				continue
			}
			sold += item.Quantity
			revenue = revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return &dto.ProductSalesDTO{ProductID: productID, TotalSold: sold, TotalRevenue: revenue}, nil
}
