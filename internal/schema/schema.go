// Package schema holds the hcldec building blocks shared by component
// kinds: optional and defaulted attributes, the common component options and
// value validators.
package schema

import (
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// Required is a mandatory attribute.
func Required(name string, t cty.Type) *hcldec.AttrSpec {
	return &hcldec.AttrSpec{Name: name, Type: t, Required: true}
}

// Optional is an attribute that decodes to null when absent. Its config
// struct field must be a pointer.
func Optional(name string, t cty.Type) *hcldec.AttrSpec {
	return &hcldec.AttrSpec{Name: name, Type: t}
}

// Default is an attribute that takes def when absent.
func Default(name string, def cty.Value) hcldec.Spec {
	return &hcldec.DefaultSpec{
		Primary: &hcldec.AttrSpec{Name: name, Type: def.Type()},
		Default: &hcldec.LiteralSpec{Value: def},
	}
}

// Object merges object specs; later parts win on duplicate keys.
func Object(parts ...hcldec.ObjectSpec) hcldec.ObjectSpec {
	out := hcldec.ObjectSpec{}
	for _, p := range parts {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

// Component holds the options every component accepts.
var Component = hcldec.ObjectSpec{
	"setup_priority": Optional("setup_priority", cty.Number),
}

// Polling adds the update interval of polling components.
var Polling = Object(Component, hcldec.ObjectSpec{
	"update_interval": Default("update_interval", cty.StringVal("60s")),
})

// ParseDuration parses durations such as `500ms`, `60s` or `1min`.
func ParseDuration(s string) (time.Duration, error) {
	norm := strings.TrimSpace(s)
	if strings.HasSuffix(norm, "min") {
		norm = strings.TrimSuffix(norm, "in")
	}
	d, err := time.ParseDuration(norm)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidConfig, "invalid duration %q", s)
	}
	if d < 0 {
		return 0, errors.Wrapf(errors.ErrInvalidConfig, "duration %q is negative", s)
	}
	return d, nil
}

// Options converts the decoded common options into codegen options.
func Options(setupPriority *float64, updateInterval *string) (codegen.ComponentOptions, error) {
	opts := codegen.ComponentOptions{SetupPriority: setupPriority}
	if updateInterval != nil {
		d, err := ParseDuration(*updateInterval)
		if err != nil {
			return opts, errors.Wrap(err, "update_interval")
		}
		opts.UpdateInterval = &d
	}
	return opts, nil
}

// OneOf checks that value is one of allowed, ignoring case, and returns the
// allowed spelling.
func OneOf(field, value string, allowed ...string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, nil
		}
	}
	return "", errors.WithHintf(
		errors.Wrapf(errors.ErrInvalidConfig, "%s: unknown value %q", field, value),
		"valid values: %s", strings.Join(allowed, ", "))
}

// Range checks lo <= v <= hi.
func Range[T int | float64](field string, v, lo, hi T) error {
	if v < lo || v > hi {
		return errors.Wrapf(errors.ErrInvalidConfig, "%s: %v is outside [%v, %v]", field, v, lo, hi)
	}
	return nil
}
