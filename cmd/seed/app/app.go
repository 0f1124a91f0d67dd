package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"user-seed/cmd/seed/di"
	"user-seed/internal/config"
	"user-seed/internal/seed"
	"user-seed/internal/usecase/user"
	"user-seed/pkg/logger"
)

// App owns the configuration, the logger and the open persistence handle
// for a single seed run.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Users  user.Service

	handle    io.Closer
	closeOnce sync.Once
	closeErr  error
}

// New loads configuration, builds the logger and opens the persistence handle.
func New(ctx context.Context) (*App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		_ = logger.Sync(l)
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: l,
		Users:  container.Users,
		handle: container,
	}, nil
}

// Run performs one seed pass and then releases the handle. A failed
// operation is logged and does not make Run fail; only a failed release does.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("panic recovered in application",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
		err = a.Close()
	}()

	a.Logger.Info("starting seed run",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", getEnvironment()),
	)

	payload := user.CreateUserRequest{
		Name:  a.Config.Seed.UserName,
		Email: a.Config.Seed.UserEmail,
	}
	if _, err := seed.Run(ctx, a.Users, payload, a.Logger); err != nil {
		a.Logger.Error("seed failed", zap.Error(err))
	}

	return nil
}

// Close releases the persistence handle and flushes the logger. It runs at
// most once; later calls return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.release()
	})
	return a.closeErr
}

func (a *App) release() error {
	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var errs []error

	done := make(chan error, 1)
	go func() {
		done <- a.handle.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			a.Logger.Error("failed to release persistence handle", zap.Error(err))
			errs = append(errs, fmt.Errorf("handle close: %w", err))
		}
	case <-time.After(timeout):
		a.Logger.Error("timed out releasing persistence handle", zap.Duration("timeout", timeout))
		errs = append(errs, fmt.Errorf("handle close: timed out after %s", timeout))
	}

	if err := logger.Sync(a.Logger); err != nil {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// loadConfig loads application configuration
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:            cfg.Logger.Level,
		Format:           cfg.Logger.Format,
		OutputPath:       cfg.Logger.OutputPath,
		SlowQuerySeconds: cfg.Logger.SlowQuerySeconds,
		EnableSampling:   cfg.Logger.EnableSampling,
		ServiceName:      cfg.Logger.ServiceName,
		ServiceVersion:   cfg.Logger.ServiceVersion,
		Environment:      getEnvironment(),
	})
}

// getConfigPath returns the configuration path
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}

// getEnvironment returns the application environment
func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
