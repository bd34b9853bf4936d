package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	engine   *engine.Engine
	config   *Config
}

// NewApp is the constructor for the main application. It builds an isolated
// logger and a validated, frozen registry. Without modules, every built-in
// module is installed.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New("builtin")
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.Install(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "kinds", reg.Keys())

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	reg.Freeze()
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		engine:   engine.New(reg),
		config:   cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
