package billing

import (
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

var invoiceTransitions = map[string][]string{
	entity.InvoiceStatusDraft:  {entity.InvoiceStatusActive},
	entity.InvoiceStatusActive: {entity.InvoiceStatusPaid, entity.InvoiceStatusVoided, entity.InvoiceStatusExpired},
	entity.InvoiceStatusPaid:   {entity.InvoiceStatusVoided},
}

var quoteTransitions = map[string][]string{
	entity.QuoteStatusDraft:    {entity.QuoteStatusSent, entity.QuoteStatusAccepted, entity.QuoteStatusRejected, entity.QuoteStatusExpired},
	entity.QuoteStatusSent:     {entity.QuoteStatusAccepted, entity.QuoteStatusRejected, entity.QuoteStatusExpired},
	entity.QuoteStatusAccepted: {entity.QuoteStatusConverted, entity.QuoteStatusExpired},
}

func allowed(table map[string][]string, from, to string) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckInvoiceTransition valida un cambio de estado de factura.
func CheckInvoiceTransition(from, to string) error {
	if from == entity.InvoiceStatusVoided && to == entity.InvoiceStatusVoided {
		return domain.ErrAlreadyVoided
	}
	if !allowed(invoiceTransitions, from, to) {
		return domain.Wrap(domain.ErrInvalidTransition, "factura %s → %s", from, to)
	}
	return nil
}

// CheckQuoteTransition valida un cambio de estado de cotización.
func CheckQuoteTransition(from, to string) error {
	if from == entity.QuoteStatusConverted && to == entity.QuoteStatusConverted {
		return domain.ErrAlreadyConverted
	}
	if !allowed(quoteTransitions, from, to) {
		return domain.Wrap(domain.ErrInvalidTransition, "cotización %s → %s", from, to)
	}
	return nil
}

// IsQuoteUserStatus indica si el estado puede pedirse manualmente (los demás los asigna el sistema).
func IsQuoteUserStatus(status string) bool {
	switch status {
	case entity.QuoteStatusSent, entity.QuoteStatusAccepted, entity.QuoteStatusRejected:
		return true
	}
	return false
}
