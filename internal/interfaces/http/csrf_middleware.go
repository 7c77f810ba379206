package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// Nombres del token CSRF: el cliente lo lee de la cookie y lo reenvía en el header.
const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

// CSRFMiddleware protege peticiones mutantes autenticadas por cookie.
// Las peticiones con Bearer Token no llevan credenciales ambientales y se omiten.
func CSRFMiddleware() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeaderName,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		Expiration:     12 * time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderAuthorization)), "bearer ")
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CSRF_FAILED", Message: "token CSRF ausente o inválido"})
		},
	})
}
