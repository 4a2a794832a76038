package insights_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/application/insights"
	"github.com/nexile/pharmacy-api/internal/application/ports"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
)

// fakeInsightService implementa el puerto con respuestas programables y
// captura el resumen recibido.
type fakeInsightService struct {
	lines   []string
	err     error
	summary ports.BusinessSummary
	called  bool
}

func (f *fakeInsightService) BusinessInsights(_ context.Context, s ports.BusinessSummary) ([]string, error) {
	f.called = true
	f.summary = s
	return f.lines, f.err
}

func aiStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.PutProducts([]entity.Product{
		{ID: "p1", Name: "Amoxicilina", Stock: 5, MinStockLevel: 10, BranchID: "b1"},
		{ID: "p2", Name: "Vitamina D3", Stock: 100, MinStockLevel: 10, BranchID: "b2"},
	}))
	require.NoError(t, store.PutTransactions([]entity.Transaction{
		{ID: "t1", BranchID: "b2", Items: []entity.TransactionItem{{ProductID: "p2", ProductName: "Vitamina D3", Quantity: 1}}},
	}))
	return store
}

func TestBusinessInsights_ProveedorResponde(t *testing.T) {
	svc := &fakeInsightService{lines: []string{"insight uno", "insight dos"}}
	uc := insights.NewAIUseCase(aiStore(t), svc)

	out, err := uc.BusinessInsights(context.Background(), scope.Caller{Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, "ai", out.Source)
	assert.Equal(t, []string{"insight uno", "insight dos"}, out.Insights)
}

func TestBusinessInsights_ResumenRespetaAlcance(t *testing.T) {
	svc := &fakeInsightService{lines: []string{"ok"}}
	uc := insights.NewAIUseCase(aiStore(t), svc)

	// Farmacéutico de b1: no debe filtrarse nada de b2 en el resumen.
	_, err := uc.BusinessInsights(context.Background(), scope.Caller{Role: entity.RolePharmacist, BranchID: "b1"})
	require.NoError(t, err)
	require.True(t, svc.called)

	assert.Equal(t, 1, svc.summary.TotalProducts)
	assert.Equal(t, []string{"Amoxicilina"}, svc.summary.LowStockItems)
	assert.Empty(t, svc.summary.TopSelling, "la venta de b2 queda fuera del resumen")
}

func TestBusinessInsights_DegradaAOfflineAnteFallo(t *testing.T) {
	svc := &fakeInsightService{err: errors.New("proveedor caído")}
	uc := insights.NewAIUseCase(aiStore(t), svc)

	out, err := uc.BusinessInsights(context.Background(), scope.Caller{Role: entity.RoleOwner})
	require.NoError(t, err, "el fallo del colaborador nunca llega al caller")
	assert.Equal(t, "offline", out.Source)
	require.Len(t, out.Insights, 3)
	assert.Contains(t, out.Insights[0], "STRATEGY:")
	assert.Contains(t, out.Insights[1], "BUNDLING:")
	assert.Contains(t, out.Insights[2], "STAFFING:")
}

func TestBusinessInsights_RespuestaVaciaTambienDegrada(t *testing.T) {
	svc := &fakeInsightService{lines: nil}
	uc := insights.NewAIUseCase(aiStore(t), svc)

	out, err := uc.BusinessInsights(context.Background(), scope.Caller{Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, "offline", out.Source)
}

func TestBusinessInsights_SinColaborador(t *testing.T) {
	uc := insights.NewAIUseCase(aiStore(t), nil)

	out, err := uc.BusinessInsights(context.Background(), scope.Caller{Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, "offline", out.Source)
	assert.Len(t, out.Insights, 3)
}
