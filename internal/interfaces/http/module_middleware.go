package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, moduleName string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que corta las rutas de un módulo opcional
// (forecasting, vision) cuando no está habilitado en la configuración.
//
// Comportamiento:
//   - 403 Forbidden  → módulo deshabilitado.
//   - 503 Service Unavailable → no se pudo consultar el estado del módulo.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, err := checker.HasActiveModule(c.UserContext(), moduleName)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo",
			})
		}
		return c.Next()
	}
}
