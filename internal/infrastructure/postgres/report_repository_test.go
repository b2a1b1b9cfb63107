package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// reportQuerier falla los totales y bloquea el desglose hasta que su contexto se cancele.
type reportQuerier struct {
	Querier
	totalsErr error
	cancelled chan struct{}
}

func (q *reportQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: q.totalsErr}
}

func (q *reportQuerier) Query(ctx context.Context, _ string, _ ...any) (pgx.Rows, error) {
	<-ctx.Done()
	close(q.cancelled)
	return nil, ctx.Err()
}

func TestSalesSummary_FirstErrorCancelsSibling(t *testing.T) {
	boom := errors.New("relation invoices does not exist")
	q := &reportQuerier{totalsErr: boom, cancelled: make(chan struct{})}
	repo := NewReportRepository(q)

	now := time.Now()
	res, err := repo.SalesSummary(context.Background(), "", now.Add(-time.Hour), now)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	select {
	case <-q.cancelled:
	default:
		t.Fatal("la consulta por medio de pago no se canceló")
	}
}
