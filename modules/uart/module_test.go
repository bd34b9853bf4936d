package uart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/testutil"
)

func TestGenerate(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
component "uart" {
  id        = "uart_bus"
  tx_pin    = 1
  rx_pin    = 3
  baud_rate = 9600
  parity    = "even"
}
`

	// Act
	res := testutil.RunHCL(t, src, &Module{})

	// Assert
	require.NoError(t, res.Err)
	assert.Equal(t, []string{
		"uart_bus = new uart::UARTComponent();",
		"App.register_component(uart_bus);",
		"uart_bus->set_baud_rate(9600);",
		"uart_bus->set_tx_pin(1);",
		"uart_bus->set_rx_pin(3);",
		"uart_bus->set_rx_buffer_size(256);",
		"uart_bus->set_data_bits(8);",
		"uart_bus->set_parity(uart::UART_CONFIG_PARITY_EVEN);",
		"uart_bus->set_stop_bits(1);",
	}, res.Statements())
	assert.Equal(t, []string{"uart::UARTComponent *uart_bus;"}, res.Output.Globals.Declarations)
}

func TestGenerate_Invalid(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "no pins", src: `component "uart" { baud_rate = 9600 }`, want: "at least one of tx_pin and rx_pin"},
		{name: "stop bits", src: `component "uart" {
  tx_pin    = 1
  baud_rate = 9600
  stop_bits = 3
}`, want: "stop_bits: 3 is outside [1, 2]"},
		{name: "missing baud rate", src: `component "uart" { tx_pin = 1 }`, want: "baud_rate"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := testutil.RunHCL(t, tc.src, &Module{})

			require.ErrorIs(t, res.Err, errors.ErrInvalidConfig)
			assert.Contains(t, res.Err.Error(), tc.want)
		})
	}
}
