package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/dto"
)

// subscriptionChecker es el contrato mínimo que necesita el middleware para
// verificar la suscripción. Lo implementa *auth.AuthUseCase; el uso de
// interfaz evita el import circular.
type subscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID string) (bool, error)
}

// RequireActiveSubscription devuelve un middleware Fiber que verifica que la
// cuenta del token tenga suscripción vigente (activa o en trial no vencido).
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 402 Payment Required → suscripción vencida.
//   - 503 Service Unavailable → fallo de infraestructura al consultar.
//   - Si no hay user_id en el contexto, responde 401.
func RequireActiveSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveSubscription(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_EXPIRED",
				Message: "la suscripción de la cuenta está vencida",
			})
		}

		return c.Next()
	}
}
