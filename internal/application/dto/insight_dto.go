package dto

// InsightResponse señal derivada del inventario.
type InsightResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Metric  string `json:"metric"`
}

// AIInsightsResponse insights de texto libre del colaborador de IA.
// Source indica el origen real: "ai" o "offline" cuando el colaborador falló
// y se degradó a la respuesta enlatada.
type AIInsightsResponse struct {
	Insights []string `json:"insights"`
	Source   string   `json:"source"`
}
