package billing

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
)

var lastDigitsPattern = regexp.MustCompile(`^[0-9]{4}$`)

// buildPayments valida la forma de cada pago (tipo, monto, referencias) y arma las entidades sin factura.
// La conciliación contra el total se hace aparte, en reconcile, una vez conocido el total.
func buildPayments(reqs []dto.PaymentRequest, now time.Time) ([]*entity.InvoicePayment, error) {
	if len(reqs) == 0 {
		return nil, domain.Wrap(domain.ErrInvalidInput, "se requiere al menos un pago")
	}
	out := make([]*entity.InvoicePayment, 0, len(reqs))
	for i, r := range reqs {
		n := i + 1
		typeID := strings.ToUpper(strings.TrimSpace(r.PaymentTypeID))
		if !r.Amount.IsPositive() {
			return nil, domain.Wrap(domain.ErrInvalidInput, "pago %d: el monto debe ser mayor a cero", n)
		}
		if !pricing.FitsScale(r.Amount, pricing.MoneyPlaces) {
			return nil, domain.Wrap(domain.ErrInvalidInput, "pago %d: el monto admite hasta 2 decimales", n)
		}
		p := &entity.InvoicePayment{
			ID:            uuid.New().String(),
			PaymentTypeID: typeID,
			Amount:        r.Amount,
			Reference:     strings.TrimSpace(r.Reference),
			PaidAt:        now,
		}
		switch typeID {
		case entity.PaymentTypeCash:
		case entity.PaymentTypeCheck:
			p.CheckNumber = strings.TrimSpace(r.CheckNumber)
			p.CheckBank = strings.TrimSpace(r.CheckBank)
			p.CheckDate = r.CheckDate
			if p.CheckNumber == "" || p.CheckBank == "" {
				return nil, domain.Wrap(domain.ErrMissingPaymentReference, "pago %d: cheque requiere número y banco", n)
			}
		case entity.PaymentTypeCard:
			p.AuthorizationNumber = strings.TrimSpace(r.AuthorizationNumber)
			p.CardLastDigits = strings.TrimSpace(r.CardLastDigits)
			p.CardType = r.CardType
			p.CardBank = strings.TrimSpace(r.CardBank)
			if p.AuthorizationNumber == "" || !lastDigitsPattern.MatchString(p.CardLastDigits) {
				return nil, domain.Wrap(domain.ErrMissingPaymentReference, "pago %d: tarjeta requiere autorización y últimos 4 dígitos", n)
			}
			if p.CardType != "" && p.CardType != entity.CardTypeCredit && p.CardType != entity.CardTypeDebit {
				return nil, domain.Wrap(domain.ErrInvalidInput, "pago %d: tipo de tarjeta inválido %q", n, p.CardType)
			}
		default:
			return nil, domain.Wrap(domain.ErrInvalidInput, "pago %d: tipo de pago desconocido %q", n, r.PaymentTypeID)
		}
		out = append(out, p)
	}
	return out, nil
}

// reconcile exige que la suma de pagos sea exactamente el total (sin tolerancia).
func reconcile(payments []*entity.InvoicePayment, total decimal.Decimal) error {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	if !sum.Equal(total) {
		return domain.Wrap(domain.ErrPaymentMismatch, "total %s, pagos %s, diferencia %s",
			total.StringFixed(2), sum.StringFixed(2), total.Sub(sum).StringFixed(2))
	}
	return nil
}
