package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/firmgen/internal/cli"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// main is the entrypoint for the firmgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(cli.ExitCode(err))
}

// run encapsulates the main application logic for easier testing and error
// handling. Errors and their hints are printed to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	err := cli.Execute(ctx, outW, args)
	if err == nil {
		return nil
	}
	fmt.Fprintln(errW, err)
	for _, hint := range hints(err) {
		fmt.Fprintf(errW, "hint: %s\n", hint)
	}
	return err
}

// hints collects the hints of err and, when a pass error sits anywhere in its
// chain, the hints of every block error inside it.
func hints(err error) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(hs []string) {
		for _, h := range hs {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	add(errors.GetAllHints(err))
	var perr *engine.PassError
	if errors.As(err, &perr) {
		for _, e := range perr.Unwrap() {
			add(hints(e))
		}
	}
	return out
}
