package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/usecase"
)

// AlertHandler lista y reconoce alertas de inventario.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List GET /api/v1/alerts/?status=ACTIVE&store_id=
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"), queryInt64(c, "store_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Acknowledge POST /api/v1/alerts/:id/acknowledge/
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.Acknowledge(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
