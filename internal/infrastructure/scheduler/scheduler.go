// Package scheduler programa el barrido diario de vencimientos con gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/pkg/config"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// Sweeper lo cumple *billing.ExpiryUseCase.
type Sweeper interface {
	Run(ctx context.Context) (billing.ExpiryResult, error)
}

// Scheduler envuelve un gocron.Scheduler con un único job diario.
type Scheduler struct {
	cron    *gocron.Scheduler
	sweeper Sweeper
	log     *logger.Logger
	timeout time.Duration
}

// New valida zona horaria y hora, y registra el job. No arranca hasta Start.
func New(cfg config.SchedulerConfig, sweeper Sweeper, log *logger.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler: zona horaria %q: %w", cfg.Timezone, err)
	}
	if _, err := time.Parse("15:04", cfg.At); err != nil {
		return nil, fmt.Errorf("scheduler: hora %q (formato HH:MM): %w", cfg.At, err)
	}
	s := &Scheduler{
		cron:    gocron.NewScheduler(loc),
		sweeper: sweeper,
		log:     log.Named("scheduler"),
		timeout: 5 * time.Minute,
	}
	s.cron.SingletonModeAll()
	if _, err := s.cron.Every(1).Day().At(cfg.At).Do(s.sweep); err != nil {
		return nil, fmt.Errorf("scheduler: registrar barrido: %w", err)
	}
	return s, nil
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
	if _, next := s.cron.NextRun(); !next.IsZero() {
		s.log.Info().Time("next_run", next).Msg("barrido de vencimientos programado")
	}
}

// Stop detiene el scheduler; un barrido en curso termina por su timeout.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.sweeper.Run(ctx); err != nil {
		s.log.Error().Err(err).Msg("barrido de vencimientos falló")
	}
}
