package ports

import "context"

// BusinessSummary es el contexto de solo lectura que el núcleo entrega al
// colaborador de IA: resúmenes de productos y ventas, nunca entidades vivas.
type BusinessSummary struct {
	TotalProducts    int      `json:"totalProducts"`
	LowStockItems    []string `json:"lowStockItems"`
	RecentSalesTotal string   `json:"recentSalesTotal"`
	TopSelling       []string `json:"topSelling"`
}

// InsightService define el puerto de salida hacia los servicios de IA
// generativa. Cualquier adaptador (Gemini, Anthropic, mock) implementa esta
// interfaz; el núcleo funciona completo con el colaborador ausente o
// fallando. El contexto debe llevar timeout para no bloquear operaciones.
type InsightService interface {
	// BusinessInsights devuelve insights de texto libre y accionables a
	// partir del resumen de inventario y ventas.
	BusinessInsights(ctx context.Context, summary BusinessSummary) ([]string, error)
}
