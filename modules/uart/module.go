// Package uart provides the `uart` bus kind.
package uart

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	uartNS = cpp.EsphomeNS.Namespace("uart")
	// UARTComponent is the C++ class of a UART bus.
	UARTComponent = uartNS.Class("UARTComponent", cpp.Component)
	// UARTDevice is the base class of devices attached to a UART bus.
	UARTDevice = uartNS.Class("UARTDevice")

	parity = uartNS.Enum("UARTParityOptions", false)
)

var parities = []string{"NONE", "EVEN", "ODD"}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `uart` block.
type Config struct {
	TxPin         *int     `cty:"tx_pin"`
	RxPin         *int     `cty:"rx_pin"`
	BaudRate      int      `cty:"baud_rate"`
	DataBits      int      `cty:"data_bits"`
	Parity        string   `cty:"parity"`
	StopBits      int      `cty:"stop_bits"`
	RxBufferSize  int      `cty:"rx_buffer_size"`
	SetupPriority *float64 `cty:"setup_priority"`
}

var spec = schema.Object(schema.Component, hcldec.ObjectSpec{
	"tx_pin":         schema.Optional("tx_pin", cty.Number),
	"rx_pin":         schema.Optional("rx_pin", cty.Number),
	"baud_rate":      schema.Required("baud_rate", cty.Number),
	"data_bits":      schema.Default("data_bits", cty.NumberIntVal(8)),
	"parity":         schema.Default("parity", cty.StringVal("NONE")),
	"stop_bits":      schema.Default("stop_bits", cty.NumberIntVal(1)),
	"rx_buffer_size": schema.Default("rx_buffer_size", cty.NumberIntVal(256)),
})

// Generate emits the UART bus.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	if cfg.TxPin == nil && cfg.RxPin == nil {
		return errors.WithHint(
			errors.Wrap(errors.ErrInvalidConfig, "uart needs at least one of tx_pin and rx_pin"),
			"set tx_pin, rx_pin or both")
	}
	if err := schema.Range("baud_rate", cfg.BaudRate, 1, 5000000); err != nil {
		return err
	}
	if err := schema.Range("data_bits", cfg.DataBits, 5, 8); err != nil {
		return err
	}
	if err := schema.Range("stop_bits", cfg.StopBits, 1, 2); err != nil {
		return err
	}
	p, err := schema.OneOf("parity", cfg.Parity, parities...)
	if err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, nil)
	if err != nil {
		return err
	}

	bus, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(bus, opts); err != nil {
		return err
	}
	calls := []cpp.Expression{bus.Call("set_baud_rate", uint32(cfg.BaudRate))}
	if cfg.TxPin != nil {
		calls = append(calls, bus.Call("set_tx_pin", *cfg.TxPin))
	}
	if cfg.RxPin != nil {
		calls = append(calls, bus.Call("set_rx_pin", *cfg.RxPin))
	}
	calls = append(calls,
		bus.Call("set_rx_buffer_size", cfg.RxBufferSize),
		bus.Call("set_data_bits", uint8(cfg.DataBits)),
		bus.Call("set_parity", parity.Value("UART_CONFIG_PARITY_"+p)),
		bus.Call("set_stop_bits", uint8(cfg.StopBits)),
	)
	for _, c := range calls {
		if err := gen.Add(c); err != nil {
			return err
		}
	}
	return gen.AddDefine("USE_UART", nil)
}

// Register registers the uart kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "uart",
		Description: "Hardware or software UART bus.",
		Schema:      spec,
		Type:        UARTComponent,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
