package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "Ferretería El Martillo", NIT: "1234567-8", Address: "6a Avenida 1-23"})
	voidedAt := time.Now()
	doc := appbilling.InvoiceDocument{
		Invoice: &entity.Invoice{
			Number: "A-00000001", IssuedAt: time.Now(),
			Subtotal: decimal.RequireFromString("300"), DiscountTotal: decimal.Zero,
			Tax: decimal.Zero, Total: decimal.RequireFromString("300"),
			Status: entity.InvoiceStatusVoided, VoidReason: "error de digitación", VoidedAt: &voidedAt,
		},
		Customer: &entity.Customer{Name: "Juan Pérez", Email: "juan@example.com"},
		Branch:   &entity.Branch{Code: "CEN", Name: "Central"},
		Lines: []appbilling.InvoiceLineForPDF{{
			InvoiceDetail: entity.InvoiceDetail{
				LineNumber: 1, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100),
				DiscountPercent: decimal.Zero, Subtotal: decimal.NewFromInt(300),
			},
			ProductCode: "P001", ProductName: "Martillo",
		}},
		Payments: []*entity.InvoicePayment{
			{PaymentTypeID: entity.PaymentTypeCard, Amount: decimal.NewFromInt(300), CardLastDigits: "4242", CardType: entity.CardTypeDebit},
		},
	}

	out, err := g.GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_Rejects(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "X"})
	_, err := g.GenerateInvoicePDF(context.Background(), appbilling.InvoiceDocument{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.GenerateInvoicePDF(ctx, appbilling.InvoiceDocument{Invoice: &entity.Invoice{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPaymentReference(t *testing.T) {
	assert.Equal(t, "Cheque 001 BI", paymentReference(&entity.InvoicePayment{PaymentTypeID: entity.PaymentTypeCheck, CheckNumber: "001", CheckBank: "BI"}))
	assert.Equal(t, "ref", paymentReference(&entity.InvoicePayment{PaymentTypeID: entity.PaymentTypeCash, Reference: "ref"}))
}
