package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/vision"
)

// VisionHandler expone análisis de estantería y tareas de detección.
type VisionHandler struct {
	uc *vision.UseCase
}

// NewVisionHandler construye el handler.
func NewVisionHandler(uc *vision.UseCase) *VisionHandler {
	return &VisionHandler{uc: uc}
}

// ListShelfAnalyses GET /api/v1/vision/shelf-analysis/?store_id=
func (h *VisionHandler) ListShelfAnalyses(c *fiber.Ctx) error {
	out, err := h.uc.ListShelfAnalyses(c.UserContext(), queryInt64(c, "store_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateShelfAnalysis godoc
// @Summary      Registrar análisis de estantería
// @Tags         vision
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfAnalysisRequest  true  "store_id, shelf_code, image_url"
// @Success      201   {object}  dto.ShelfAnalysisResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/vision/shelf-analysis/ [post]
func (h *VisionHandler) CreateShelfAnalysis(c *fiber.Ctx) error {
	var in dto.CreateShelfAnalysisRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateShelfAnalysis(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDetectionModels GET /api/v1/vision/detection-models/
func (h *VisionHandler) ListDetectionModels(c *fiber.Ctx) error {
	out, err := h.uc.ListDetectionModels(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateDetectionTask POST /api/v1/vision/detection-tasks/
func (h *VisionHandler) CreateDetectionTask(c *fiber.Ctx) error {
	var in dto.CreateDetectionTaskRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateDetectionTask(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
