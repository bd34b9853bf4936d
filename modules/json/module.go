// Package json provides the `json` kind, which pulls the ArduinoJson library
// into the build. Other kinds that serialise JSON add the same library and
// are deduplicated against it.
package json

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/registry"
)

// Library coordinates shared with kinds that depend on json.
const (
	LibraryName    = "bblanchon/ArduinoJson"
	LibraryVersion = "7.4.2"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Require adds the ArduinoJson library and the USE_JSON define.
func Require(gen *codegen.Context) error {
	if err := gen.AddLibrary(LibraryName, LibraryVersion, ""); err != nil {
		return err
	}
	return gen.AddDefine("USE_JSON", nil)
}

func generate(ctx context.Context, gen *codegen.Context, cfg cty.Value) error {
	return Require(gen)
}

// Register registers the json kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "json",
		Description: "ArduinoJson support.",
		Schema:      hcldec.ObjectSpec{},
		Generate:    generate,
	})
}
