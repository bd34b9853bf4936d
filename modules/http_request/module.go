// Package http_request provides the `http_request` kind, the ESP-IDF HTTP
// client component.
package http_request

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
	"github.com/specialistvlad/firmgen/modules/json"
)

var (
	httpNS = cpp.EsphomeNS.Namespace("http_request")
	// HttpRequestComponent is the transport-independent client interface.
	HttpRequestComponent = httpNS.Class("HttpRequestComponent", cpp.Component)
	// HttpRequestIDF is the ESP-IDF client declared for `http_request` blocks.
	HttpRequestIDF = httpNS.Class("HttpRequestIDF", HttpRequestComponent)
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `http_request` block.
type Config struct {
	UserAgent       *string  `cty:"useragent"`
	Timeout         string   `cty:"timeout"`
	FollowRedirects bool     `cty:"follow_redirects"`
	RedirectLimit   int      `cty:"redirect_limit"`
	BufferSizeRx    int      `cty:"buffer_size_rx"`
	BufferSizeTx    int      `cty:"buffer_size_tx"`
	VerifySSL       bool     `cty:"verify_ssl"`
	WatchdogTimeout *string  `cty:"watchdog_timeout"`
	SetupPriority   *float64 `cty:"setup_priority"`
}

var spec = schema.Object(schema.Component, hcldec.ObjectSpec{
	"useragent":        schema.Optional("useragent", cty.String),
	"timeout":          schema.Default("timeout", cty.StringVal("4.5s")),
	"follow_redirects": schema.Default("follow_redirects", cty.True),
	"redirect_limit":   schema.Default("redirect_limit", cty.NumberIntVal(3)),
	"buffer_size_rx":   schema.Default("buffer_size_rx", cty.NumberIntVal(512)),
	"buffer_size_tx":   schema.Default("buffer_size_tx", cty.NumberIntVal(512)),
	"verify_ssl":       schema.Default("verify_ssl", cty.True),
	"watchdog_timeout": schema.Optional("watchdog_timeout", cty.String),
})

// Generate emits the HTTP client.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	timeout, err := schema.ParseDuration(cfg.Timeout)
	if err != nil {
		return err
	}
	if err := schema.Range("redirect_limit", cfg.RedirectLimit, 0, 20); err != nil {
		return err
	}
	if err := schema.Range("buffer_size_rx", cfg.BufferSizeRx, 64, 65535); err != nil {
		return err
	}
	if err := schema.Range("buffer_size_tx", cfg.BufferSizeTx, 64, 65535); err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, nil)
	if err != nil {
		return err
	}

	client, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(client, opts); err != nil {
		return err
	}

	calls := []cpp.Expression{client.Call("set_timeout", timeout)}
	if cfg.UserAgent != nil {
		calls = append(calls, client.Call("set_useragent", *cfg.UserAgent))
	}
	calls = append(calls,
		client.Call("set_follow_redirects", cfg.FollowRedirects),
		client.Call("set_redirect_limit", uint16(cfg.RedirectLimit)),
		client.Call("set_buffer_size_rx", uint16(cfg.BufferSizeRx)),
		client.Call("set_buffer_size_tx", uint16(cfg.BufferSizeTx)),
	)
	if cfg.WatchdogTimeout != nil {
		wdt, err := schema.ParseDuration(*cfg.WatchdogTimeout)
		if err != nil {
			return err
		}
		calls = append(calls, client.Call("set_watchdog_timeout", wdt))
	}
	for _, c := range calls {
		if err := gen.Add(c); err != nil {
			return err
		}
	}

	if !cfg.VerifySSL {
		gen.AddBuildFlag("-DCONFIG_ESP_TLS_INSECURE=1")
		gen.AddBuildFlag("-DCONFIG_ESP_TLS_SKIP_SERVER_CERT_VERIFY=1")
	}
	if err := gen.AddDefine("USE_HTTP_REQUEST", nil); err != nil {
		return err
	}
	return json.Require(gen)
}

// Register registers the http_request kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "http_request",
		Description: "HTTP client on ESP-IDF.",
		Schema:      spec,
		Type:        HttpRequestIDF,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
