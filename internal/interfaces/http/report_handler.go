package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
)

// ReportHandler reportes de ventas.
type ReportHandler struct {
	uc   *analytics.SalesUseCase
	errs errorResponder
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.SalesUseCase, errs errorResponder) *ReportHandler {
	return &ReportHandler{uc: uc, errs: errs}
}

// Sales godoc
// @Summary      Resumen de ventas por rango de fechas
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        branch_id  query  string  false  "sucursal (vacío = todas)"
// @Param        from       query  string  true   "desde (YYYY-MM-DD)"
// @Param        to         query  string  true   "hasta inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dto.Response{data=dto.SalesReportResponse}
// @Failure      400  {object}  dto.Response
// @Failure      403  {object}  dto.Response
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := parseQuery(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.SalesReport(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return ok(c, fiber.StatusOK, "reporte de ventas", out)
}
