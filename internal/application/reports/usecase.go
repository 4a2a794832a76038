// Package reports arma los datos de reportes de ventas por sucursal y
// delega el render a los generadores de infraestructura (PDF y hoja de
// cálculo).
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// ── Puertos de render ─────────────────────────────────────────────────────────

// SalesReportPDFGenerator renderiza el reporte de ventas como PDF.
type SalesReportPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, data *SalesReportData) ([]byte, error)
}

// TransactionExporter renderiza las transacciones como hoja de cálculo.
type TransactionExporter interface {
	ExportTransactions(data *SalesReportData) ([]byte, error)
}

// ── Datos del reporte ─────────────────────────────────────────────────────────

// SalesReportLine es una línea de venta aplanada: una por ítem de transacción.
type SalesReportLine struct {
	TransactionID string
	Timestamp     time.Time
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
}

// SalesReportData agrupa todo lo que necesitan los generadores.
type SalesReportData struct {
	BranchName   string
	GeneratedAt  time.Time
	Lines        []SalesReportLine
	Revenue      decimal.Decimal
	COGS         decimal.Decimal
	GrossProfit  decimal.Decimal
	Transactions int
}

// ── Caso de uso ───────────────────────────────────────────────────────────────

// UseCase construye SalesReportData respetando el alcance del llamante.
type UseCase struct {
	store repository.EntityStore
	perf  *analytics.PerformanceUseCase
	pdf   SalesReportPDFGenerator
	sheet TransactionExporter
}

func NewUseCase(
	store repository.EntityStore,
	perf *analytics.PerformanceUseCase,
	pdf SalesReportPDFGenerator,
	sheet TransactionExporter,
) *UseCase {
	return &UseCase{store: store, perf: perf, pdf: pdf, sheet: sheet}
}

// SalesReportPDF genera el PDF de ventas de una sucursal visible para el
// llamante.
func (uc *UseCase) SalesReportPDF(ctx context.Context, caller scope.Caller, branchID string) ([]byte, error) {
	data, err := uc.buildReportData(caller, branchID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesReportPDF(ctx, data)
}

// TransactionsSpreadsheet exporta las transacciones de una sucursal visible
// para el llamante.
func (uc *UseCase) TransactionsSpreadsheet(caller scope.Caller, branchID string) ([]byte, error) {
	data, err := uc.buildReportData(caller, branchID)
	if err != nil {
		return nil, err
	}
	return uc.sheet.ExportTransactions(data)
}

func (uc *UseCase) buildReportData(caller scope.Caller, branchID string) (*SalesReportData, error) {
	// Fuera de alcance se comporta como inexistente.
	if !scope.Allows(caller, branchID) {
		return nil, domain.ErrNotFound
	}

	branches, err := uc.store.Branches()
	if err != nil {
		return nil, err
	}
	var branch *entity.Branch
	for i := range branches {
		if branches[i].ID == branchID {
			branch = &branches[i]
			break
		}
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}

	data := &SalesReportData{
		BranchName:  branch.Name,
		GeneratedAt: time.Now(),
	}
	for _, tx := range txs {
		if tx.BranchID != branchID {
			continue
		}
		data.Transactions++
		for _, item := range tx.Items {
			// El nombre viene congelado en la línea: renombrar o borrar el
			// producto no altera documentos históricos.
			name := item.ProductName
			if name == "" {
				name = item.ProductID
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			data.Lines = append(data.Lines, SalesReportLine{
				TransactionID: tx.ID,
				Timestamp:     tx.Date,
				ProductName:   name,
				Quantity:      item.Quantity,
				UnitPrice:     item.Price,
				LineTotal:     item.Price.Mul(qty),
			})
		}
	}

	perf, err := uc.perf.BranchPerformance(branchID)
	if err != nil {
		return nil, err
	}
	data.Revenue = perf.Revenue
	data.COGS = perf.COGS
	data.GrossProfit = perf.GrossProfit

	return data, nil
}
