package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
)

// QuoteHandler cotizaciones.
type QuoteHandler struct {
	uc   *billing.QuoteUseCase
	errs errorResponder
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *billing.QuoteUseCase, errs errorResponder) *QuoteHandler {
	return &QuoteHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateQuoteRequest  true  "cliente y líneas"
// @Success      201   {object}  dto.Response{data=dto.QuoteResponse}
// @Failure      400   {object}  dto.Response
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.CreateQuote(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusCreated, "cotización creada", out)
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.Response{data=dto.QuoteResponse}
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetQuote(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "cotización", out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        branch_id    query  string  false  "sucursal"
// @Param        customer_id  query  string  false  "cliente"
// @Param        status       query  string  false  "estado"
// @Success      200  {object}  dto.Response{data=dto.ListResponse[dto.QuoteResponse]}
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var in dto.QuoteListRequest
	if err := parseQuery(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ListQuotes(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "cotizaciones", out)
}

// Recalculate godoc
// @Summary      Reemplazar líneas y recalcular totales (solo Borrador)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID"
// @Param        body  body  dto.RecalculateQuoteRequest  true  "líneas"
// @Success      200   {object}  dto.Response{data=dto.QuoteResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/quotes/{id}/lines [put]
func (h *QuoteHandler) Recalculate(c *fiber.Ctx) error {
	var in dto.RecalculateQuoteRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.Recalculate(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "cotización recalculada", out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado (Enviada, Aceptada, Rechazada)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID"
// @Param        body  body  dto.ChangeQuoteStatusRequest  true  "estado"
// @Success      200   {object}  dto.Response{data=dto.QuoteResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeQuoteStatusRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "estado actualizado", out)
}

// Convert godoc
// @Summary      Convertir cotización aceptada en factura
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.ConvertQuoteRequest  true  "pagos y serie opcional"
// @Success      201   {object}  dto.Response{data=dto.InvoiceResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertQuoteRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ConvertToInvoice(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusCreated, "cotización convertida", out)
}
