package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/auth"
	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/pkg/jwt"
)

// Locals keys para UserID, Role y Caller en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalCaller = "caller"
)

// AuthMiddleware valida el Bearer Token JWT y resuelve el Caller con su
// alcance actual. La afiliación a sucursales se lee del directorio en cada
// petición, nunca del token: revocar una asignación surte efecto inmediato
// sin esperar la expiración del JWT.
func AuthMiddleware(jwtSecret string, authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		user, err := authUC.GetUser(userID)
		if err != nil {
			// Token válido pero usuario eliminado del directorio.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "usuario no encontrado"})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalCaller, scope.CallerFromUser(*user))
		return c.Next()
	}
}

// RequireRole limita la ruta a los roles indicados. Debe usarse DESPUÉS de
// AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCaller devuelve el Caller resuelto del contexto.
func GetCaller(c *fiber.Ctx) scope.Caller {
	v := c.Locals(LocalCaller)
	if v == nil {
		return scope.Caller{}
	}
	caller, _ := v.(scope.Caller)
	return caller
}
