package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/orders"
)

// OrderHandler maneja órdenes de venta y clientes (protegido).
type OrderHandler struct {
	uc        *orders.OrderUseCase
	customers *orders.CustomerUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, customers *orders.CustomerUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, customers: customers}
}

// Create godoc
// @Summary      Crear orden
// @Description  line_total = quantity × unit_price × (1 − discount_percent/100)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "customer_id, store_id, line_items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/orders/ [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/orders/orders/?status=&customer_id=&store_id=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), orders.OrderQuery{
		Status:     c.Query("status"),
		CustomerID: queryInt64(c, "customer_id"),
		StoreID:    queryInt64(c, "store_id"),
		Page:       pageFromQuery(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/orders/orders/:id/
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden
// @Description  Solo notes y status; status sigue la máquina de estados.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "status, notes"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/orders/{id}/ [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	var in dto.UpdateOrderRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden
// @Description  Descuenta el stock de cada línea en la tienda de la orden dentro de una transacción.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/orders/{id}/confirm/ [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	id, ok, resp := pathID(c)
	if !ok {
		return resp
	}
	out, err := h.uc.Confirm(c.UserContext(), actor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCustomer POST /api/v1/orders/customers/
func (h *OrderHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustomers GET /api/v1/orders/customers/?search=
func (h *OrderHandler) ListCustomers(c *fiber.Ctx) error {
	out, err := h.customers.List(c.UserContext(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
