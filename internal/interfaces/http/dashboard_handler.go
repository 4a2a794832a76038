package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
)

// DashboardHandler expone los agregados financieros del dashboard.
type DashboardHandler struct {
	uc *analytics.PerformanceUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.PerformanceUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// BranchPerformance godoc
// @Summary      Desempeño financiero de una sucursal
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchPerformanceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/branches/{id}/performance [get]
func (h *DashboardHandler) BranchPerformance(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	// Sucursal fuera de alcance: inexistente para el caller.
	if !scope.Allows(GetCaller(c), id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
	}
	out, err := h.uc.BranchPerformance(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExecutiveSummary godoc
// @Summary      Análisis ejecutivo del alcance del caller
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExecutiveSummaryDTO
// @Router       /api/dashboard/executive-summary [get]
func (h *DashboardHandler) ExecutiveSummary(c *fiber.Ctx) error {
	out, err := h.uc.ExecutiveSummary(GetCaller(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductSales godoc
// @Summary      Ventas acumuladas de un producto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductSalesDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/products/{id}/sales [get]
func (h *DashboardHandler) ProductSales(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ProductSales(GetCaller(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
