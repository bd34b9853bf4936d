package http_request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/globals"
	"github.com/specialistvlad/firmgen/internal/testutil"
	"github.com/specialistvlad/firmgen/modules/json"
)

func TestGenerate_Defaults(t *testing.T) {
	t.Parallel()
	// Act
	res := testutil.RunYAML(t, "http_request:\n  id: http\n", &Module{})

	// Assert
	require.NoError(t, res.Err)
	assert.Equal(t, []string{
		"http = new http_request::HttpRequestIDF();",
		"App.register_component(http);",
		"http->set_timeout(4500);",
		"http->set_follow_redirects(true);",
		"http->set_redirect_limit(3);",
		"http->set_buffer_size_rx(512);",
		"http->set_buffer_size_tx(512);",
	}, res.Statements())
	assert.Empty(t, res.Output.Globals.BuildFlags)
	assert.Equal(t, []globals.Library{{Name: json.LibraryName, Version: json.LibraryVersion}}, res.Output.Globals.Libraries)
}

func TestGenerate_AllOptions(t *testing.T) {
	t.Parallel()
	// Arrange
	src := `
http_request:
  id: http
  useragent: firmgen/1.0
  timeout: 10s
  follow_redirects: false
  redirect_limit: 0
  buffer_size_rx: 1024
  buffer_size_tx: 2048
  verify_ssl: false
  watchdog_timeout: 1min
json:
`

	// Act
	res := testutil.RunYAML(t, src, &Module{}, &json.Module{})

	// Assert
	require.NoError(t, res.Err)
	assert.Equal(t, []string{
		"http = new http_request::HttpRequestIDF();",
		"App.register_component(http);",
		"http->set_timeout(10000);",
		`http->set_useragent("firmgen/1.0");`,
		"http->set_follow_redirects(false);",
		"http->set_redirect_limit(0);",
		"http->set_buffer_size_rx(1024);",
		"http->set_buffer_size_tx(2048);",
		"http->set_watchdog_timeout(60000);",
	}, res.Statements())
	assert.Equal(t, []string{
		"-DCONFIG_ESP_TLS_INSECURE=1",
		"-DCONFIG_ESP_TLS_SKIP_SERVER_CERT_VERIFY=1",
	}, res.Output.Globals.BuildFlags)
	assert.Len(t, res.Output.Globals.Libraries, 1, "the json block requests the same library")
}

func TestGenerate_Invalid(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "timeout", src: "http_request:\n  timeout: soon\n", want: `invalid duration "soon"`},
		{name: "redirect limit", src: "http_request:\n  redirect_limit: 50\n", want: "redirect_limit"},
		{name: "buffer size", src: "http_request:\n  buffer_size_tx: 8\n", want: "buffer_size_tx"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := testutil.RunYAML(t, tc.src, &Module{})

			require.ErrorIs(t, res.Err, errors.ErrInvalidConfig)
			assert.Contains(t, res.Err.Error(), tc.want)
		})
	}
}
