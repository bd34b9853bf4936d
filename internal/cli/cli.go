package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/firmgen/internal/app"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
)

const envPrefix = "FIRMGEN"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// NewRootCmd builds the firmgen command. Logs and dry-run output go to
// outW. Without modules, every built-in module is available.
func NewRootCmd(outW io.Writer, modules ...registry.Module) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "firmgen [flags] CONFIG_PATH",
		Short: "Generate ESPHome-style firmware sources from a device configuration.",
		Long: `firmgen - Generates the C++ sources of an ESPHome-style firmware.

CONFIG_PATH is a single .hcl/.yaml/.yml file or a directory containing them.
Every flag can also be set through a FIRMGEN_ environment variable, for
example FIRMGEN_LOG_LEVEL=debug or FIRMGEN_OUTPUT=build.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError(errors.Newf("accepts at most one CONFIG_PATH, received %d", len(args)))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("config")
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return cmd.Help()
			}

			cfg, err := app.NewConfig(app.Config{
				ConfigPath: path,
				OutputDir:  v.GetString("output"),
				LogLevel:   v.GetString("log-level"),
				LogFormat:  v.GetString("log-format"),
				DryRun:     v.GetBool("dry-run"),
			})
			if err != nil {
				return usageError(err)
			}

			a, err := app.NewApp(outW, cfg, modules...)
			if err != nil {
				return err
			}
			_, err = a.Run(cmd.Context())
			return err
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(outW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Path to the configuration file or directory.")
	flags.StringP("output", "o", app.DefaultOutputDir, "Directory the project files are written to.")
	flags.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Bool("dry-run", false, "Print main.cpp instead of writing files.")
	// BindPFlags only fails on a nil flag set.
	_ = v.BindPFlags(flags)

	return cmd
}

// Execute runs the root command with args.
func Execute(ctx context.Context, outW io.Writer, args []string, modules ...registry.Module) error {
	cmd := NewRootCmd(outW, modules...)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
