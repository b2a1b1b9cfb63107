package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
)

// CustomerHandler clientes.
type CustomerHandler struct {
	uc   *billing.CustomerUseCase
	errs errorResponder
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, errs errorResponder) *CustomerHandler {
	return &CustomerHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "cliente"
// @Success      201   {object}  dto.Response{data=dto.CustomerResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusCreated, "cliente creado", out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.Response{data=dto.CustomerResponse}
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "cliente", out)
}

// List godoc
// @Summary      Buscar clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "nombre, email, código o NIT"
// @Success      200  {object}  dto.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), c.Query("search"), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "clientes", out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.CustomerResponse}
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "cliente actualizado", out)
}
