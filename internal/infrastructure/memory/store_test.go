package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, stock int64) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: "P1", Code: "P1", Name: "Brocha", Price: decimal.NewFromInt(10),
		Stock: decimal.NewFromInt(stock), Status: entity.ProductStatusActive,
	}))
}

func TestRun_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, 5)

	boom := errors.New("boom")
	err := s.Run(ctx, func(repos repository.TxRepos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "P1", decimal.NewFromInt(1)))
		_, err := repos.Series.Next(ctx, "A", "")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(5)))

	// el correlativo consumido dentro de la transacción fallida no queda reservado
	next, err := s.Series().Next(ctx, "A", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestRun_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.False(t, called)
}

func TestSeriesNext_PerSeries(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	series := s.Series()

	for want := int64(1); want <= 3; want++ {
		got, err := series.Next(ctx, "A", "B1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	// otra sucursal con la misma serie continúa el mismo contador
	got, err := series.Next(ctx, "A", "B2")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	got, err = series.Next(ctx, entity.QuoteSeries, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestCustomerCreate_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "C1", Code: "C-1", Email: "ana@example.com"}))

	err := s.Customers().Create(ctx, &entity.Customer{ID: "C2", Code: "C-2", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
