package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// Validate performs a strict parity check between each entry's schema and
// the Go config struct its generator decodes into, and checks that every
// key is a well-formed kind.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, key := range r.Keys() {
		e, _ := r.Lookup(key)

		if _, err := cfgid.ParseKind(key); err != nil {
			errs = append(errs, fmt.Sprintf("kind '%s': %v", key, err))
		}

		if e.Config == nil {
			logger.Debug("Kind has no config prototype; skipping schema parity check.", "kind", key)
			continue
		}

		schemaType := hcldec.ImpliedType(e.Schema)
		goType, err := gocty.ImpliedType(e.Config)
		if err != nil {
			errs = append(errs, fmt.Sprintf("kind '%s': could not imply cty type from Go config %T: %v", key, e.Config, err))
			continue
		}

		// The core type check
		if !schemaType.Equals(goType) {
			errs = append(errs, fmt.Sprintf("kind '%s': type mismatch. Schema decodes to '%s' but Go config %T expects '%s'",
				key, typeexpr.TypeString(schemaType), e.Config, typeexpr.TypeString(goType)))
		}
	}

	if len(errs) > 0 {
		return errors.Newf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
