package cli

import (
	"fmt"

	"go.uber.org/zap"

	_ "github.com/prime399/packmate/all"
	"github.com/prime399/packmate/internal/catalog"
	"github.com/prime399/packmate/internal/config"
	"github.com/prime399/packmate/internal/core"
	"github.com/prime399/packmate/internal/logging"
	"github.com/prime399/packmate/internal/monitoring"
	"github.com/prime399/packmate/internal/service"
	"github.com/prime399/packmate/internal/store"
)

// app bundles the wired-up dependencies shared by all subcommands.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	store   store.Store
	catalog *catalog.Catalog
	svc     *service.Service
	metrics *monitoring.Metrics
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	var st store.Store
	if cfg.Store.Memory {
		st = store.NewMemory()
	} else {
		st, err = store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open result store: %w", err)
		}
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
	}

	metrics := monitoring.NewDefault()
	client := core.NewClient(core.WithTimeout(cfg.Verify.HTTPTimeout))

	svc := service.New(st, cat,
		service.WithClient(client),
		service.WithLogger(log.Named("service")),
		service.WithMetrics(metrics),
		service.WithRetryConfig(core.RetryConfig{
			MaxRetries: cfg.Verify.MaxRetries,
			BaseDelay:  cfg.Verify.BaseDelay,
		}),
		service.WithPacing(cfg.Verify.PacingDelay),
	)

	log.Debug("application wired",
		zap.Int("apps", cat.Len()),
		zap.Bool("memoryStore", cfg.Store.Memory),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		catalog: cat,
		svc:     svc,
		metrics: metrics,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing result store failed", zap.Error(err))
	}
	_ = a.log.Sync()
}
