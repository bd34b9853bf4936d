// Package globals provides the `globals` kind: a typed global variable that
// lambdas can read and write through id(...).
package globals

import (
	"context"
	"regexp"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	globalsNS = cpp.EsphomeNS.Namespace("globals")
	// GlobalsComponent holds a value of its template argument type.
	GlobalsComponent = globalsNS.Class("GlobalsComponent", cpp.Component)
	// RestoringGlobalsComponent also persists the value across reboots.
	RestoringGlobalsComponent = globalsNS.Class("RestoringGlobalsComponent", cpp.Component)
)

// typeRegex accepts plain C++ type spellings such as `int`, `std::string`
// or `std::array<int, 3>`.
var typeRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:<>, *]*$`)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `globals` block.
type Config struct {
	Type          string   `cty:"type"`
	InitialValue  *string  `cty:"initial_value"`
	RestoreValue  bool     `cty:"restore_value"`
	SetupPriority *float64 `cty:"setup_priority"`
}

var spec = schema.Object(schema.Component, hcldec.ObjectSpec{
	"type":          schema.Required("type", cty.String),
	"initial_value": schema.Optional("initial_value", cty.String),
	"restore_value": schema.Default("restore_value", cty.False),
})

// Generate emits the global variable component.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	if !typeRegex.MatchString(cfg.Type) {
		return errors.Wrapf(errors.ErrInvalidConfig, "type: %q is not a C++ type", cfg.Type)
	}
	opts, err := schema.Options(cfg.SetupPriority, nil)
	if err != nil {
		return err
	}

	base := GlobalsComponent
	if cfg.RestoreValue {
		base = RestoringGlobalsComponent
	}
	typ := base.Template(cpp.Raw(cfg.Type))

	var args []cpp.Expression
	if cfg.InitialValue != nil {
		args = append(args, cpp.Raw(*cfg.InitialValue))
	}
	g, err := gen.Pvariable(gen.ID(), cpp.New(typ, args...), typ)
	if err != nil {
		return err
	}
	return gen.RegisterComponent(g, opts)
}

// Register registers the globals kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "globals",
		Description: "Global variable accessible from lambdas.",
		Schema:      spec,
		Type:        GlobalsComponent,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
