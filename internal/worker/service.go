package worker

import (
	"context"
	"errors"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	draftCleanupInterval = time.Hour
)

// Service servicio de cola asíncrona
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService crea el servicio de cola asíncrona
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name nombre del servicio
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start arranca el servidor de tareas
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.OrderService != nil {
		go s.runDraftCleanupLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop detiene el servidor de tareas
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runDraftCleanupLoop limpia borradores abandonados periódicamente
func (s *Service) runDraftCleanupLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil || s.consumer.OrderService == nil {
		return
	}
	maxAgeHours := 24
	if s.consumer.Config != nil && s.consumer.Config.Business.DraftMaxAgeHours > 0 {
		maxAgeHours = s.consumer.Config.Business.DraftMaxAgeHours
	}
	runOnce := func() {
		if _, err := s.consumer.OrderService.CleanupDrafts(time.Duration(maxAgeHours) * time.Hour); err != nil {
			logger.Warnw("worker_draft_cleanup_loop_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(draftCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
