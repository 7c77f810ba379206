package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
)

// InventoryHandler maneja niveles, bitácora, tiendas y traslados (protegido).
type InventoryHandler struct {
	uc        *inventory.UseCase
	movements *inventory.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, movements *inventory.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, movements: movements}
}

// ListLevels godoc
// @Summary      Listar niveles de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        store_id    query  int     false  "Filtrar por tienda"
// @Param        status      query  string  false  "in_stock, low_stock, out_of_stock, overstock"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {object}  dto.LevelListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/levels/ [get]
func (h *InventoryHandler) ListLevels(c *fiber.Ctx) error {
	out, err := h.uc.ListLevels(c.UserContext(), inventory.LevelQuery{
		ProductID: queryInt64(c, "product_id"),
		StoreID:   queryInt64(c, "store_id"),
		Status:    c.Query("status"),
		Page:      pageFromQuery(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetLevel GET /api/v1/inventory/levels/:id/
func (h *InventoryHandler) GetLevel(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.GetLevel(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "nivel no encontrado")
	}
	return c.JSON(out)
}

// AdjustLevel godoc
// @Summary      Ajustar nivel de inventario
// @Description  quantity es un delta con signo. Registra la transacción y rechaza stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del nivel"
// @Param        body  body  dto.AdjustLevelRequest  true  "quantity, adjustment_reason"
// @Success      200   {object}  dto.LevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/levels/{id}/ [patch]
func (h *InventoryHandler) AdjustLevel(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	var in dto.AdjustLevelRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.AdjustLevel(c.UserContext(), actor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Bitácora de transacciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        level_id  query  int  false  "Filtrar por nivel"
// @Param        days      query  int  false  "Últimos N días"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/v1/inventory/transactions/ [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(c.UserContext(), queryInt64(c, "level_id"), c.QueryInt("days", 0), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStores GET /api/v1/inventory/stores/
func (h *InventoryHandler) ListStores(c *fiber.Ctx) error {
	out, err := h.uc.ListStores(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Crear traslado entre tiendas
// @Description  Queda PENDING; el stock se mueve al aprobar.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "from_store_id, to_store_id, product_id, quantity, movement_type=transfer"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/movements/ [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.movements.CreateTransfer(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements GET /api/v1/inventory/movements/?store_id=&status=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.movements.ListMovements(c.UserContext(), queryInt64(c, "store_id"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApproveMovement godoc
// @Summary      Aprobar traslado
// @Description  Descuenta del origen y acredita en destino en una sola transacción. Requiere admin o manager.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del traslado"
// @Success      200  {object}  dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/movements/{id}/approve/ [post]
func (h *InventoryHandler) ApproveMovement(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.movements.ApproveTransfer(c.UserContext(), actor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelMovement POST /api/v1/inventory/movements/:id/cancel/
func (h *InventoryHandler) CancelMovement(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.movements.CancelTransfer(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
