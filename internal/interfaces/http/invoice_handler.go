package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc           *billing.InvoiceUseCase
	pdf          *billing.PDFUseCase
	paymentTypes *billing.PaymentTypeUseCase
	errs         errorResponder
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, paymentTypes *billing.PaymentTypeUseCase, errs errorResponder) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, paymentTypes: paymentTypes, errs: errs}
}

// Create godoc
// @Summary      Crear factura
// @Description  Valida stock y pagos, asigna el correlativo de la serie y descuenta inventario en una sola transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "cliente, líneas y pagos"
// @Success      201   {object}  dto.Response{data=dto.InvoiceResponse}
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Failure      503   {object}  dto.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.CreateInvoice(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusCreated, "factura creada", out)
}

// GetByID godoc
// @Summary      Obtener factura con detalle y pagos
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.Response{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "factura", out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        branch_id    query  string  false  "sucursal"
// @Param        customer_id  query  string  false  "cliente"
// @Param        status       query  string  false  "estado"
// @Param        from         query  string  false  "desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "máximo 100"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.Response{data=dto.ListResponse[dto.InvoiceResponse]}
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := parseQuery(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ListInvoices(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "facturas", out)
}

// Void godoc
// @Summary      Anular factura
// @Description  Devuelve el stock de cada línea y descuenta el total del acumulado del cliente.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la factura"
// @Param        body  body  dto.VoidInvoiceRequest  true  "motivo"
// @Success      200   {object}  dto.Response{data=dto.InvoiceResponse}
// @Failure      409   {object}  dto.Response
// @Router       /api/invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.VoidInvoice(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "factura anulada", out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}

// PaymentTypes godoc
// @Summary      Catálogo de tipos de pago
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=[]dto.PaymentTypeResponse}
// @Router       /api/payment-types [get]
func (h *InvoiceHandler) PaymentTypes(c *fiber.Ctx) error {
	out, err := h.paymentTypes.List(c.Context(), GetPrincipal(c).UserID)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "tipos de pago", out)
}
