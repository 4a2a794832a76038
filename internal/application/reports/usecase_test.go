package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/reports"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakePDF y fakeSheet capturan los datos y devuelven bytes fijos.
type fakePDF struct{ data *reports.SalesReportData }

func (f *fakePDF) GenerateSalesReportPDF(_ context.Context, d *reports.SalesReportData) ([]byte, error) {
	f.data = d
	return []byte("%PDF"), nil
}

type fakeSheet struct{ data *reports.SalesReportData }

func (f *fakeSheet) ExportTransactions(d *reports.SalesReportData) ([]byte, error) {
	f.data = d
	return []byte("<Workbook/>"), nil
}

func reportStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.PutBranches([]entity.Branch{{ID: "b1", Name: "Centro"}, {ID: "b2", Name: "Norte"}}))
	require.NoError(t, store.PutProducts([]entity.Product{
		{ID: "p1", Name: "Amoxicilina", Price: dec("12.50"), Cost: dec("5.00"), Stock: 100, BranchID: "b1"},
	}))
	require.NoError(t, store.PutTransactions([]entity.Transaction{
		{
			ID: "t1", Date: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), BranchID: "b1", Total: dec("25.00"),
			Items: []entity.TransactionItem{{ProductID: "p1", ProductName: "Amoxicilina", Quantity: 2, Price: dec("12.50")}},
		},
		{
			ID: "t2", Date: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC), BranchID: "b2", Total: dec("10.00"),
			Items: []entity.TransactionItem{{ProductID: "p-viejo", ProductName: "Viejo", Quantity: 1, Price: dec("10.00")}},
		},
	}))
	return store
}

func newReportsUC(t *testing.T) (*reports.UseCase, *fakePDF, *fakeSheet) {
	t.Helper()
	store := reportStore(t)
	pdf := &fakePDF{}
	sheet := &fakeSheet{}
	uc := reports.NewUseCase(store, analytics.NewPerformanceUseCase(store), pdf, sheet)
	return uc, pdf, sheet
}

func TestSalesReportPDF_ArmaDatosDeLaSucursal(t *testing.T) {
	uc, pdf, _ := newReportsUC(t)

	out, err := uc.SalesReportPDF(context.Background(), scope.Caller{Role: entity.RoleOwner}, "b1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)

	require.NotNil(t, pdf.data)
	assert.Equal(t, "Centro", pdf.data.BranchName)
	assert.Equal(t, 1, pdf.data.Transactions, "solo ventas de b1")
	require.Len(t, pdf.data.Lines, 1)
	assert.Equal(t, "Amoxicilina", pdf.data.Lines[0].ProductName)
	assert.True(t, dec("25.00").Equal(pdf.data.Lines[0].LineTotal))
	assert.True(t, dec("25.00").Equal(pdf.data.Revenue))
	// COGS = 2 × 5.00
	assert.True(t, dec("10.00").Equal(pdf.data.COGS))
	assert.True(t, dec("15.00").Equal(pdf.data.GrossProfit))
}

// Las líneas del reporte usan el nombre congelado en la venta: renombrar o
// eliminar el producto después no altera documentos históricos.
func TestSalesReportPDF_NombreCongeladoEnLaLinea(t *testing.T) {
	store := reportStore(t)
	pdf := &fakePDF{}
	uc := reports.NewUseCase(store, analytics.NewPerformanceUseCase(store), pdf, &fakeSheet{})

	// Renombrar el producto en el catálogo tras la venta.
	products, err := store.Products()
	require.NoError(t, err)
	products[0].Name = "Amoxicilina 500mg NUEVA"
	require.NoError(t, store.PutProducts(products))

	_, err = uc.SalesReportPDF(context.Background(), scope.Caller{Role: entity.RoleOwner}, "b1")
	require.NoError(t, err)
	require.Len(t, pdf.data.Lines, 1)
	assert.Equal(t, "Amoxicilina", pdf.data.Lines[0].ProductName, "nombre histórico intacto")

	// El producto de t2 ya no existe en el catálogo: la línea conserva su
	// nombre congelado de todos modos.
	_, err = uc.SalesReportPDF(context.Background(), scope.Caller{Role: entity.RoleOwner}, "b2")
	require.NoError(t, err)
	require.Len(t, pdf.data.Lines, 1)
	assert.Equal(t, "Viejo", pdf.data.Lines[0].ProductName)
}

// Línea histórica sin nombre congelado (dato anterior al snapshot): el id es
// el último recurso.
func TestSalesReportPDF_LineaSinNombreUsaElID(t *testing.T) {
	store := reportStore(t)
	require.NoError(t, store.PutTransactions([]entity.Transaction{
		{
			ID: "t3", Date: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), BranchID: "b1", Total: dec("5.00"),
			Items: []entity.TransactionItem{{ProductID: "p-legado", Quantity: 1, Price: dec("5.00")}},
		},
	}))
	pdf := &fakePDF{}
	uc := reports.NewUseCase(store, analytics.NewPerformanceUseCase(store), pdf, &fakeSheet{})

	_, err := uc.SalesReportPDF(context.Background(), scope.Caller{Role: entity.RoleOwner}, "b1")
	require.NoError(t, err)
	require.Len(t, pdf.data.Lines, 1)
	assert.Equal(t, "p-legado", pdf.data.Lines[0].ProductName)
}

func TestSalesReportPDF_FueraDeAlcance(t *testing.T) {
	uc, _, _ := newReportsUC(t)

	_, err := uc.SalesReportPDF(context.Background(),
		scope.Caller{Role: entity.RolePharmacist, BranchID: "b1"}, "b2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "fuera de alcance se comporta como inexistente")
}

func TestSalesReportPDF_SucursalInexistente(t *testing.T) {
	uc, _, _ := newReportsUC(t)
	_, err := uc.SalesReportPDF(context.Background(), scope.Caller{Role: entity.RoleOwner}, "b-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionsSpreadsheet_DelegaAlExportador(t *testing.T) {
	uc, _, sheet := newReportsUC(t)

	out, err := uc.TransactionsSpreadsheet(scope.Caller{Role: entity.RoleManager, AssignedBranchIDs: []string{"b1"}}, "b1")
	require.NoError(t, err)
	assert.Equal(t, []byte("<Workbook/>"), out)
	require.NotNil(t, sheet.data)
	assert.Equal(t, "Centro", sheet.data.BranchName)
}
