// Package logger provides the `logger` kind.
package logger

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	loggerNS = cpp.EsphomeNS.Namespace("logger")
	// Logger is the C++ class of the logger component.
	Logger = loggerNS.Class("Logger", cpp.Component)
)

// Levels lists the log levels from least to most verbose.
var Levels = []string{"NONE", "ERROR", "WARN", "INFO", "CONFIG", "DEBUG", "VERBOSE", "VERY_VERBOSE"}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `logger` block.
type Config struct {
	BaudRate      int      `cty:"baud_rate"`
	Level         string   `cty:"level"`
	TxBufferSize  int      `cty:"tx_buffer_size"`
	SetupPriority *float64 `cty:"setup_priority"`
}

var spec = schema.Object(schema.Component, hcldec.ObjectSpec{
	"baud_rate":      schema.Default("baud_rate", cty.NumberIntVal(115200)),
	"level":          schema.Default("level", cty.StringVal("DEBUG")),
	"tx_buffer_size": schema.Default("tx_buffer_size", cty.NumberIntVal(512)),
})

// Generate emits the logger component.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	level, err := schema.OneOf("level", cfg.Level, Levels...)
	if err != nil {
		return err
	}
	if err := schema.Range("tx_buffer_size", cfg.TxBufferSize, 0, 65535); err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, nil)
	if err != nil {
		return err
	}

	log, err := gen.Pvariable(gen.ID(), cpp.New(Logger, cpp.Lit(cfg.BaudRate), cpp.Lit(cfg.TxBufferSize)), nil)
	if err != nil {
		return err
	}
	if err := gen.Add(log.Call("pre_setup")); err != nil {
		return err
	}
	if err := gen.RegisterComponent(log, opts); err != nil {
		return err
	}
	if err := gen.AddDefine("USE_LOGGER", nil); err != nil {
		return err
	}
	return gen.AddDefine("ESPHOME_LOG_LEVEL", cpp.Raw("ESPHOME_LOG_LEVEL_"+level))
}

// Register registers the logger kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "logger",
		Description: "Serial logger.",
		Schema:      spec,
		Type:        Logger,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
