package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/catalog"
	"github.com/sorplus/public-gateway/internal/config"
)

// Service periodically refreshes the category catalog so filter options
// track admin edits without a restart.
type Service struct {
	config *config.Config
	store  catalog.Store
	cron   *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(cfg *config.Config, store catalog.Store) *Service {
	return &Service{
		config: cfg,
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled refresh.
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.CatalogRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.store.Refresh(ctx); err != nil {
			logrus.Errorf("Scheduled catalog refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with catalog refresh spec %q", s.config.CatalogRefreshSpec)
	return nil
}

// Stop stops the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
