package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "A-00000042", FormatNumber("A", 42, 8))
	assert.Equal(t, "COT-0007", FormatNumber("COT", 7, 4))
	assert.Equal(t, "B-00000001", FormatNumber("B", 1, 0))
	assert.Equal(t, "A-123456789", FormatNumber("A", 123456789, 8))
}

func TestNormalizeSeries(t *testing.T) {
	s, err := NormalizeSeries(" suc1 ")
	require.NoError(t, err)
	assert.Equal(t, "SUC1", s)

	for _, bad := range []string{"", "A-B", "DEMASIADOLARGA", "cot", entity.QuoteSeries} {
		_, err := NormalizeSeries(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestCheckInvoiceTransition(t *testing.T) {
	assert.NoError(t, CheckInvoiceTransition(entity.InvoiceStatusActive, entity.InvoiceStatusPaid))
	assert.NoError(t, CheckInvoiceTransition(entity.InvoiceStatusPaid, entity.InvoiceStatusVoided))
	assert.NoError(t, CheckInvoiceTransition(entity.InvoiceStatusActive, entity.InvoiceStatusExpired))
	assert.ErrorIs(t, CheckInvoiceTransition(entity.InvoiceStatusVoided, entity.InvoiceStatusVoided), domain.ErrAlreadyVoided)
	assert.ErrorIs(t, CheckInvoiceTransition(entity.InvoiceStatusExpired, entity.InvoiceStatusVoided), domain.ErrInvalidTransition)
	assert.ErrorIs(t, CheckInvoiceTransition(entity.InvoiceStatusPaid, entity.InvoiceStatusExpired), domain.ErrInvalidTransition)
}

func TestCheckQuoteTransition(t *testing.T) {
	assert.NoError(t, CheckQuoteTransition(entity.QuoteStatusDraft, entity.QuoteStatusSent))
	assert.NoError(t, CheckQuoteTransition(entity.QuoteStatusSent, entity.QuoteStatusAccepted))
	assert.NoError(t, CheckQuoteTransition(entity.QuoteStatusAccepted, entity.QuoteStatusConverted))
	assert.ErrorIs(t, CheckQuoteTransition(entity.QuoteStatusConverted, entity.QuoteStatusConverted), domain.ErrAlreadyConverted)
	assert.ErrorIs(t, CheckQuoteTransition(entity.QuoteStatusRejected, entity.QuoteStatusAccepted), domain.ErrInvalidTransition)
	assert.ErrorIs(t, CheckQuoteTransition(entity.QuoteStatusAccepted, entity.QuoteStatusSent), domain.ErrInvalidTransition)

	assert.True(t, IsQuoteUserStatus(entity.QuoteStatusSent))
	assert.False(t, IsQuoteUserStatus(entity.QuoteStatusConverted))
}
