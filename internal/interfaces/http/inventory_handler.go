package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
)

// InventoryHandler ajustes de stock, historial y reposición.
type InventoryHandler struct {
	stock         *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
	errs          errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase, errs errorResponder) *InventoryHandler {
	return &InventoryHandler{stock: stock, replenishment: replenishment, errs: errs}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "cantidad y dirección (increase | decrease)"
// @Success      200   {object}  dto.Response{data=dto.StockAdjustmentResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/products/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.stock.AdjustStock(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "stock actualizado", out)
}

// Movements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.StockMovementResponse}
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.stock.ListMovements(c.Context(), GetPrincipal(c), c.Params("id"), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "movimientos", out)
}

// LowStock godoc
// @Summary      Productos en o bajo el stock mínimo
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "máximo de productos"
// @Success      200  {object}  dto.Response{data=[]dto.LowStockItem}
// @Router       /api/products/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStock(c.Context(), GetPrincipal(c), c.QueryInt("limit", 50))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "productos bajo mínimo", out)
}
