// Package pdf imprime facturas de venta en A4 con Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT         │  N° Factura + Fecha + Estado│
//	│  SUCURSAL / CLIENTE                                          │
//	│  TABLA: Cant | Código | Descripción | P.Unit | Desc | Subtotal│
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL            │
//	│  PAGOS: tipo, referencia, monto                              │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// Issuer datos de la empresa que aparecen en el encabezado.
type Issuer struct {
	Name    string
	NIT     string
	Address string
}

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer  Issuer
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se imprimen con formato es-GT.
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		issuer:  issuer,
		printer: message.NewPrinter(language.MustParse("es-GT")),
	}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Invoice == nil {
		return nil, fmt.Errorf("pdf: factura vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+doc.Invoice.Number, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc.Branch, doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(doc.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc.Invoice))
	if len(doc.Payments) > 0 {
		m.AddRows(g.paymentRows(doc.Payments)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow(doc.Invoice))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoPDFGenerator) headerRow(inv *entity.Invoice) core.Row {
	right := []core.Component{
		text.New("FACTURA DE VENTA", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(inv.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Fecha: "+inv.IssuedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 12, Color: colorGray,
		}),
	}
	if inv.Status == entity.InvoiceStatusVoided {
		right = append(right, text.New("ANULADA: "+inv.VoidReason, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 16, Color: colorRed,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(g.issuer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(g.issuer.NIT, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New(g.issuer.Address, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(right...),
	)
}

// partiesRow sucursal emisora (izq) y cliente (der).
func partiesRow(branch *entity.Branch, customer *entity.Customer) core.Row {
	branchName, branchAddr := "-", ""
	if branch != nil {
		branchName = branch.Code + " " + branch.Name
		branchAddr = nonEmpty(branch.Address, "") + " " + branch.City
	}
	return row.New(18).Add(
		col.New(5).Add(
			text.New("SUCURSAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(branchName, props.Text{Size: 9, Top: 6}),
			text.New(branchAddr, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(7).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIT: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.NIT, "C/F"),
				nonEmpty(customer.Email, "-"),
				nonEmpty(customer.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Desc.", 1, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) tableDetailRows(lines []appbilling.InvoiceLineForPDF) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, d := range lines {
		result = append(result, row.New(7).Add(
			cell(d.Quantity.String(), 1, align.Center),
			cell(d.ProductCode, 2, align.Left),
			cell(d.ProductName, 4, align.Left),
			cell(g.money(d.UnitPrice), 2, align.Right),
			cell(d.DiscountPercent.String()+"%", 1, align.Right),
			cell(g.money(d.Subtotal), 2, align.Right),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Descuento:", 6),
			label("Impuesto:", 11),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16,
			}),
		),
		col.New(3).Add(
			value(g.money(inv.Subtotal), 1),
			value("-"+g.money(inv.DiscountTotal), 6),
			value(g.money(inv.Tax), 11),
			text.New(g.money(inv.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) paymentRows(payments []*entity.InvoicePayment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FORMA DE PAGO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p.PaymentTypeID, props.Text{Size: 8, Left: 1})),
			col.New(6).Add(text.New(paymentReference(p), props.Text{Size: 8, Color: colorGray})),
			col.New(3).Add(text.New(g.money(p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// footerRow QR con número, fecha y total para verificar la factura en mostrador.
func (g *MarotoPDFGenerator) footerRow(inv *entity.Invoice) core.Row {
	qr := fmt.Sprintf("%s|%s|%s|%s", inv.Number, inv.IssuedAt.Format("2006-01-02"), inv.Total.StringFixed(2), inv.Status)
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary}),
			text.New("Conserve este documento como comprobante. Cambios y devoluciones con factura.", props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

func paymentReference(p *entity.InvoicePayment) string {
	switch p.PaymentTypeID {
	case entity.PaymentTypeCheck:
		return fmt.Sprintf("Cheque %s %s", p.CheckNumber, p.CheckBank)
	case entity.PaymentTypeCard:
		return fmt.Sprintf("%s ****%s aut. %s", p.CardType, p.CardLastDigits, p.AuthorizationNumber)
	}
	return p.Reference
}

// money formatea con separador de miles y dos decimales, prefijo Q.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("Q%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
