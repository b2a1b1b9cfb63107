package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/pkg/config"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

type fakeSweeper struct {
	calls int
	err   error
}

func (f *fakeSweeper) Run(ctx context.Context) (billing.ExpiryResult, error) {
	f.calls++
	return billing.ExpiryResult{Invoices: 1}, f.err
}

func TestNew_Validates(t *testing.T) {
	_, err := New(config.SchedulerConfig{Timezone: "Marte/Olympus", At: "00:05"}, &fakeSweeper{}, logger.Nop())
	assert.Error(t, err)

	_, err = New(config.SchedulerConfig{Timezone: "UTC", At: "25:99"}, &fakeSweeper{}, logger.Nop())
	assert.Error(t, err)

	s, err := New(config.SchedulerConfig{Timezone: "UTC", At: "00:05"}, &fakeSweeper{}, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, s.cron.Jobs(), 1)
}

func TestSweep_CallsSweeper(t *testing.T) {
	f := &fakeSweeper{err: errors.New("db caída")}
	s, err := New(config.SchedulerConfig{Timezone: "UTC", At: "03:00"}, f, logger.Nop())
	require.NoError(t, err)

	s.sweep()
	s.sweep()
	assert.Equal(t, 2, f.calls)
}
