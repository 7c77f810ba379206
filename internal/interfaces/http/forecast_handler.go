package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/forecasting"
)

// ForecastHandler expone pronósticos y recomendaciones de reposición.
// Las corridas solo quedan encoladas (pending); el cálculo lo hace un servicio externo.
type ForecastHandler struct {
	uc *forecasting.UseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(uc *forecasting.UseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// ListResults GET /api/v1/forecasting/results/?product_id=&status=
func (h *ForecastHandler) ListResults(c *fiber.Ctx) error {
	out, err := h.uc.ListResults(c.UserContext(), queryInt64(c, "product_id"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateResult godoc
// @Summary      Solicitar pronóstico
// @Tags         forecasting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateForecastRequest  true  "product_id, store_id, forecast_days"
// @Success      201   {object}  dto.ForecastResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/forecasting/results/ [post]
func (h *ForecastHandler) CreateResult(c *fiber.Ctx) error {
	var in dto.CreateForecastRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateResult(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListModels GET /api/v1/forecasting/models/
func (h *ForecastHandler) ListModels(c *fiber.Ctx) error {
	out, err := h.uc.ListModels(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RunModel godoc
// @Summary      Ejecutar modelo de pronóstico
// @Description  Crea un pronóstico pendiente por producto solicitado.
// @Tags         forecasting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del modelo"
// @Param        body  body  dto.RunModelRequest  true  "product_ids, forecast_days"
// @Success      202   {object}  dto.RunModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/forecasting/models/{id}/run/ [post]
func (h *ForecastHandler) RunModel(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	var in dto.RunModelRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.RunModel(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// Recommendations godoc
// @Summary      Recomendaciones de reposición
// @Description  Productos en o bajo su punto de reorden, con cantidad sugerida (reorden × 1.5 − actual).
// @Tags         forecasting
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  int  false  "Tienda; sin valor = todas"
// @Success      200  {object}  dto.RecommendationListResponse
// @Router       /api/v1/forecasting/recommendations/ [get]
func (h *ForecastHandler) Recommendations(c *fiber.Ctx) error {
	out, err := h.uc.Recommendations(c.UserContext(), int64(c.QueryInt("store_id", 0)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
