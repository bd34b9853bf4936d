// Package core provides the `esphome` kind: the node name and the build
// requirements that do not belong to any component.
package core

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var nameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the decoded `esphome` block.
type Config struct {
	Name              string            `cty:"name"`
	FriendlyName      *string           `cty:"friendly_name"`
	Board             *string           `cty:"board"`
	Libraries         []string          `cty:"libraries"`
	BuildFlags        []string          `cty:"build_flags"`
	PlatformioOptions map[string]string `cty:"platformio_options"`
}

var spec = hcldec.ObjectSpec{
	"name":               schema.Required("name", cty.String),
	"friendly_name":      schema.Optional("friendly_name", cty.String),
	"board":              schema.Optional("board", cty.String),
	"libraries":          schema.Default("libraries", cty.ListValEmpty(cty.String)),
	"build_flags":        schema.Default("build_flags", cty.ListValEmpty(cty.String)),
	"platformio_options": schema.Default("platformio_options", cty.MapValEmpty(cty.String)),
}

// ParseLibrary splits a library reference of the form `name`,
// `name@version` or `name=repository`.
func ParseLibrary(ref string) (name, version, repository string) {
	if n, repo, ok := strings.Cut(ref, "="); ok {
		return strings.TrimSpace(n), "", strings.TrimSpace(repo)
	}
	if n, v, ok := strings.Cut(ref, "@"); ok {
		return strings.TrimSpace(n), strings.TrimSpace(v), ""
	}
	return strings.TrimSpace(ref), "", ""
}

// Generate emits the application pre-setup and the build requirements.
func Generate(ctx context.Context, gen *codegen.Context, cfg *Config) error {
	if !nameRegex.MatchString(cfg.Name) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "name: %q is not a valid node name", cfg.Name),
			"use lowercase letters, digits and hyphens")
	}
	friendly := cfg.Name
	if cfg.FriendlyName != nil {
		friendly = *cfg.FriendlyName
	}
	if err := gen.Add(cpp.App.Member("pre_setup").Call(cfg.Name, friendly)); err != nil {
		return err
	}
	if err := gen.AddDefine("ESPHOME_NODE_NAME", cfg.Name); err != nil {
		return err
	}
	if cfg.Board != nil {
		if err := gen.AddDefine("ESPHOME_BOARD", *cfg.Board); err != nil {
			return err
		}
		if err := gen.AddPlatformOption("board", *cfg.Board); err != nil {
			return err
		}
	}

	for _, ref := range cfg.Libraries {
		name, version, repo := ParseLibrary(ref)
		if err := gen.AddLibrary(name, version, repo); err != nil {
			return err
		}
	}
	for _, flag := range cfg.BuildFlags {
		gen.AddBuildFlag(flag)
	}

	keys := make([]string, 0, len(cfg.PlatformioOptions))
	for k := range cfg.PlatformioOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := gen.AddPlatformOption(k, cfg.PlatformioOptions[k]); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the esphome kind.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&registry.Entry{
		Key:         "esphome",
		Description: "Node name and build settings.",
		Schema:      spec,
		Config:      Config{},
		Generate:    registry.Typed(Generate),
	})
}
