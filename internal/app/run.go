package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/firmgen/internal/config"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/render"
)

// Run loads the configuration, runs one generation pass and writes the
// project files. Nothing is written when any stage fails.
func (a *App) Run(ctx context.Context) (*engine.Output, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config_path", a.config.ConfigPath)

	blocks, err := config.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	a.logger.Info("Configuration loaded.", "blocks", len(blocks))

	out, err := a.engine.Generate(ctx, blocks)
	if err != nil {
		var perr *engine.PassError
		if errors.As(err, &perr) {
			a.printDiagnostics(perr)
		}
		return nil, err
	}

	if a.config.DryRun {
		a.logger.Info("Dry run, printing main.cpp instead of writing files.")
		if _, err := a.outW.Write(render.MainCPP(out)); err != nil {
			return nil, errors.Wrap(err, "printing main.cpp")
		}
		return out, nil
	}

	paths, err := render.Write(ctx, a.config.OutputDir, out)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Project written.", "dir", a.config.OutputDir, "files", len(paths))
	return out, nil
}

// printDiagnostics writes the schema diagnostics of a failed pass, one per
// line, prefixed with their source range.
func (a *App) printDiagnostics(perr *engine.PassError) {
	for _, d := range perr.Diagnostics {
		if d.Subject != nil {
			fmt.Fprintf(a.outW, "%s: %s; %s\n", d.Subject, d.Summary, d.Detail)
			continue
		}
		fmt.Fprintf(a.outW, "%s; %s\n", d.Summary, d.Detail)
	}
}
