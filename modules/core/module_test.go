package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/globals"
	"github.com/specialistvlad/firmgen/internal/testutil"
)

func TestParseLibrary(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		ref                 string
		name, version, repo string
	}{
		{ref: "Wire", name: "Wire"},
		{ref: "bblanchon/ArduinoJson@7.4.2", name: "bblanchon/ArduinoJson", version: "7.4.2"},
		{ref: "noise = https://github.com/x/noise.git", name: "noise", repo: "https://github.com/x/noise.git"},
	}
	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			t.Parallel()
			name, version, repo := ParseLibrary(tc.ref)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.version, version)
			assert.Equal(t, tc.repo, repo)
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
esphome:
  name: living-room
  friendly_name: Living Room
  board: esp32dev
  libraries:
    - bblanchon/ArduinoJson@7.4.2
    - Wire
  build_flags: [-Os, -Wno-unused]
  platformio_options:
    upload_speed: "921600"
    board_build.flash_mode: dio
`

	// Act
	res := testutil.RunYAML(t, src, &Module{})

	// Assert
	require.NoError(t, res.Err)
	assert.Equal(t, []string{`App.pre_setup("living-room", "Living Room");`}, res.Statements())
	g := res.Output.Globals
	assert.Equal(t, []globals.Define{
		{Name: "ESPHOME_NODE_NAME", Value: `"living-room"`},
		{Name: "ESPHOME_BOARD", Value: `"esp32dev"`},
	}, g.Defines)
	assert.Equal(t, []globals.Library{
		{Name: "bblanchon/ArduinoJson", Version: "7.4.2"},
		{Name: "Wire"},
	}, g.Libraries)
	assert.Equal(t, []string{"-Os", "-Wno-unused"}, g.BuildFlags)
	assert.Equal(t, []globals.Option{
		{Key: "board", Value: "esp32dev"},
		{Key: "board_build.flash_mode", Value: "dio"},
		{Key: "upload_speed", Value: "921600"},
	}, g.PlatformOptions)
}

func TestGenerate_InvalidName(t *testing.T) {
	t.Parallel()
	res := testutil.RunHCL(t, `component "esphome" { name = "Living Room" }`, &Module{})

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errors.ErrInvalidConfig)
}
