// Package insights deriva señales de negocio del inventario: reglas
// estadísticas locales siempre disponibles y, por encima, un colaborador de
// IA opcional que degrada a una respuesta enlatada cuando falla.
package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

const (
	expiryWindowDays   = 60
	deadStockThreshold = 200
	highMarginMinStock = 50
)

// Pérdida diaria estimada por ítem con stock bajo. Cifra fija de
// aproximación, no un modelo calibrado.
var revenueLossPerItem = decimal.NewFromInt(120)

// Margen mínimo para la regla de oportunidad: (precio − costo) > costo × 1.5.
var highMarginFactor = decimal.NewFromFloat(1.5)

// StatisticalUseCase evalúa las reglas estadísticas sobre el inventario.
type StatisticalUseCase struct {
	store repository.EntityStore
}

// NewStatisticalUseCase construye el generador.
func NewStatisticalUseCase(store repository.EntityStore) *StatisticalUseCase {
	return &StatisticalUseCase{store: store}
}

// ForBranch evalúa las reglas sobre los productos de la sucursal indicada, o
// sobre todos los productos si branchID es vacío.
func (uc *StatisticalUseCase) ForBranch(branchID string) ([]entity.Insight, error) {
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	if branchID != "" {
		filtered := make([]entity.Product, 0, len(products))
		for _, p := range products {
			if p.BranchID == branchID {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return Evaluate(products, time.Now()), nil
}

// Evaluate corre las cuatro reglas, independientes entre sí, y concatena sus
// resultados en orden fijo. Una regla sin productos calificados simplemente
// se omite. Función pura: segura de llamar en cada request.
func Evaluate(products []entity.Product, now time.Time) []entity.Insight {
	insights := make([]entity.Insight, 0, 4)

	// 1. Riesgo de quiebre de stock: 0 < stock <= mínimo.
	lowStock := 0
	for _, p := range products {
		if p.Stock > 0 && p.Stock <= p.MinStockLevel {
			lowStock++
		}
	}
	if lowStock > 0 {
		loss := revenueLossPerItem.Mul(decimal.NewFromInt(int64(lowStock)))
		insights = append(insights, entity.Insight{
			Type: entity.InsightWarning,
			Message: fmt.Sprintf(
				"%d items below safety stock. Risk of revenue loss estimated at $%s/day if depleted.",
				lowStock, loss.StringFixed(0)),
			Metric: "Stock Critical",
		})
	}

	// 2. Stock muerto: capital inmovilizado en exceso de unidades.
	for _, p := range products {
		if p.Stock > deadStockThreshold {
			insights = append(insights, entity.Insight{
				Type: entity.InsightWarning,
				Message: fmt.Sprintf(
					"Capital Lock Detected: %s has >200 units. Recommend 15%% flash sale to free up liquidity.",
					p.Name),
				Metric: "Cash Flow",
			})
			break
		}
	}

	// 3. Riesgo de vencimiento: lotes que vencen en menos de 60 días.
	expiring := 0
	for _, p := range products {
		if p.ExpiresWithin(now, expiryWindowDays) {
			expiring++
		}
	}
	if expiring > 0 {
		insights = append(insights, entity.Insight{
			Type: entity.InsightWarning,
			Message: fmt.Sprintf(
				"%d batches expiring <60 days. Bundle with fast-movers to clear inventory.",
				expiring),
			Metric: "Expiry Risk",
		})
	}

	// 4. Oportunidad de margen alto con stock suficiente para empujar venta.
	for _, p := range products {
		margin := p.Price.Sub(p.Cost)
		if margin.GreaterThan(p.Cost.Mul(highMarginFactor)) && p.Stock > highMarginMinStock {
			insights = append(insights, entity.Insight{
				Type: entity.InsightSuccess,
				Message: fmt.Sprintf(
					"High Margin Alert: '%s' yields >150%% return. Instruct pharmacists to recommend as primary option.",
					p.Name),
				Metric: "Profit Maximization",
			})
			break
		}
	}

	return insights
}
