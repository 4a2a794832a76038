package entity

// Tipos de insight.
const (
	InsightWarning    = "warning"
	InsightSuccess    = "success"
	InsightPrediction = "prediction"
	InsightInfo       = "info"
)

// Insight es una señal derivada del inventario (riesgo de quiebre de stock,
// stock muerto, vencimientos, margen alto). No se persiste: se recalcula en
// cada consulta.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Metric  string `json:"metric"`
}
