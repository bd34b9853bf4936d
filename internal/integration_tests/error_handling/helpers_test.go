package integration_tests

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/app"
	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
	"github.com/specialistvlad/firmgen/internal/testutil"
)

var peerType = cpp.Global.Namespace("demo").Class("Peer", cpp.Component)

type peerConfig struct {
	Peer string `cty:"peer"`
}

// peerModule registers `peer`: a component that waits for its peer before
// declaring itself, so two peers pointing at each other never finish.
type peerModule struct{}

func (m *peerModule) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:    "peer",
		Schema: hcldec.ObjectSpec{"peer": schema.Required("peer", cty.String)},
		Type:   peerType,
		Config: peerConfig{},
		Generate: registry.Typed(func(ctx context.Context, gen *codegen.Context, cfg *peerConfig) error {
			other, err := gen.Get(ctx, cfg.Peer, nil)
			if err != nil {
				return err
			}
			_, err = gen.NewPvariable(gen.ID(), other)
			return err
		}),
	})
}

// runBuiltin runs a pass over files with every built-in module and extra
// test modules installed.
func runBuiltin(t *testing.T, files map[string]string, extra ...registry.Module) *testutil.HarnessResult {
	t.Helper()
	return testutil.Run(t, files, append(app.BuiltinModules(), extra...)...)
}

// requirePassError extracts the aggregated report of a failed pass.
func requirePassError(t *testing.T, res *testutil.HarnessResult) *engine.PassError {
	t.Helper()
	require.Error(t, res.Err)
	require.Nil(t, res.Output, "a failed pass has no output")
	var perr *engine.PassError
	require.ErrorAs(t, res.Err, &perr)
	return perr
}
