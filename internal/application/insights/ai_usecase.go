package insights

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/ports"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

const (
	aiTimeout     = 10 * time.Second
	topSellingMax = 10

	// Valores de Source en la respuesta.
	sourceAI      = "ai"
	sourceOffline = "offline"
)

// offlineInsights es la respuesta enlatada cuando el colaborador de IA está
// ausente o falla. El dashboard nunca ve un error por esta vía.
var offlineInsights = []string{
	"STRATEGY: Antibiotic sales surge predicted (+22%). Pre-order 'Amoxicillin' bulk packs to secure 12% supplier discount.",
	"BUNDLING: 'Vitamin D3' frequently bought with Pain Relief. Create a 'Wellness Bundle' to increase average basket size by 15%.",
	"STAFFING: Peak traffic detected 4pm-7pm at Downtown Branch. Add 1 support staff to reduce wait times and recover lost walk-ins.",
}

// AIUseCase orquesta los insights generativos: arma el resumen de contexto
// con datos dentro del alcance del caller, llama al puerto con timeout y
// degrada a la respuesta enlatada ante cualquier fallo.
type AIUseCase struct {
	store repository.EntityStore
	svc   ports.InsightService
}

// NewAIUseCase construye el caso de uso. svc puede ser nil (colaborador
// ausente): toda llamada devuelve la respuesta offline.
func NewAIUseCase(store repository.EntityStore, svc ports.InsightService) *AIUseCase {
	return &AIUseCase{store: store, svc: svc}
}

// BusinessInsights devuelve insights de texto libre para el alcance del
// caller. Nunca retorna error por fallo del colaborador: solo por fallo del
// propio store.
func (uc *AIUseCase) BusinessInsights(ctx context.Context, caller scope.Caller) (*dto.AIInsightsResponse, error) {
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}

	scopedProducts := scope.Products(caller, products)
	scopedTxs := scope.Transactions(caller, txs)

	// Resumen compacto para no exceder límites de tokens.
	summary := ports.BusinessSummary{TotalProducts: len(scopedProducts)}
	for _, p := range scopedProducts {
		if p.IsLowStock() {
			summary.LowStockItems = append(summary.LowStockItems, p.Name)
		}
	}
	total := decimal.Zero
	for _, t := range scopedTxs {
		total = total.Add(t.Total)
		for _, item := range t.Items {
			if len(summary.TopSelling) < topSellingMax {
				summary.TopSelling = append(summary.TopSelling, item.ProductName)
			}
		}
	}
	summary.RecentSalesTotal = total.StringFixed(2)

	if uc.svc == nil {
		return &dto.AIInsightsResponse{Insights: offlineInsights, Source: sourceOffline}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	lines, err := uc.svc.BusinessInsights(ctx, summary)
	if err != nil || len(lines) == 0 {
		log.Warn().Err(err).Msg("insights IA: colaborador falló, degradando a respuesta offline")
		return &dto.AIInsightsResponse{Insights: offlineInsights, Source: sourceOffline}, nil
	}
	return &dto.AIInsightsResponse{Insights: lines, Source: sourceAI}, nil
}
