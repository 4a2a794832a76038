package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/pos"
	"github.com/nexile/pharmacy-api/internal/application/usecase"
	"github.com/nexile/pharmacy-api/internal/domain"
)

// POSHandler maneja el punto de venta: checkout e historial de ventas.
type POSHandler struct {
	checkout *pos.CheckoutUseCase
	txUC     *usecase.TransactionUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(checkout *pos.CheckoutUseCase, txUC *usecase.TransactionUseCase) *POSHandler {
	return &POSHandler{checkout: checkout, txUC: txUC}
}

// Checkout godoc
// @Summary      Confirmar venta
// @Description  Valida el carrito completo contra el stock actual y confirma
//               todo-o-nada. Una sola línea con stock insuficiente rechaza el
//               carrito entero sin efectos parciales.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "items del carrito"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	cart := make([]pos.CartLine, 0, len(in.Items))
	for _, item := range in.Items {
		cart = append(cart, pos.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	tx, err := h.checkout.Checkout(c.Context(), GetCaller(c), cart)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida en el carrito"})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "INSUFFICIENT_STOCK",
				Message: fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
					stockErr.ProductID, stockErr.Requested, stockErr.Available),
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la venta requiere una sucursal propia"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	items := make([]dto.TransactionItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, dto.TransactionItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		Total:        tx.Total,
		BranchID:     tx.BranchID,
		PharmacistID: tx.PharmacistID,
		Items:        items,
	})
}

// ListTransactions godoc
// @Summary      Listar ventas visibles para el caller
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/pos/transactions [get]
func (h *POSHandler) ListTransactions(c *fiber.Ctx) error {
	out, err := h.txUC.List(GetCaller(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
