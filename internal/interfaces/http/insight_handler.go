package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/insights"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
)

// InsightHandler expone las señales estadísticas del inventario y los
// insights de negocio del colaborador de IA.
type InsightHandler struct {
	statUC *insights.StatisticalUseCase
	aiUC   *insights.AIUseCase
}

// NewInsightHandler construye el handler.
func NewInsightHandler(statUC *insights.StatisticalUseCase, aiUC *insights.AIUseCase) *InsightHandler {
	return &InsightHandler{statUC: statUC, aiUC: aiUC}
}

// Statistical godoc
// @Summary      Señales estadísticas del inventario
// @Description  branch_id vacío evalúa el inventario completo (vista dueño).
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "ID de sucursal"
// @Success      200  {array}  dto.InsightResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insights/statistical [get]
func (h *InsightHandler) Statistical(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	caller := GetCaller(c)
	if branchID != "" && !scope.Allows(caller, branchID) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
	}
	if branchID == "" && caller.Role != entity.RoleOwner {
		// Sin sucursal explícita: el farmacéutico ve la propia, el gerente
		// debe indicar cuál de sus sucursales evaluar.
		if caller.Role == entity.RolePharmacist {
			branchID = caller.BranchID
		} else {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
		}
	}
	out, err := h.statUC.ForBranch(branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := make([]dto.InsightResponse, 0, len(out))
	for _, ins := range out {
		resp = append(resp, dto.InsightResponse{Type: ins.Type, Message: ins.Message, Metric: ins.Metric})
	}
	return c.JSON(resp)
}

// Business godoc
// @Summary      Insights de negocio asistidos por IA
// @Description  Ante fallo o timeout del proveedor degrada al análisis
//               offline; el campo source indica el origen real.
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AIInsightsResponse
// @Router       /api/insights/business [get]
func (h *InsightHandler) Business(c *fiber.Ctx) error {
	out, err := h.aiUC.BusinessInsights(c.Context(), GetCaller(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
