package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// Block is one component entry of the configuration tree.
type Block struct {
	// Kind is the discriminator, `domain` or `domain.platform`.
	Kind string
	// ID is the user-given id, or "" when the block has none.
	ID string
	// Body is the block content with the `id` (and YAML `platform`) keys
	// already taken out.
	Body hcl.Body
	// Range is where the block starts in its file.
	Range hcl.Range
}

// Decode decodes the block body with spec. Problems come back both as
// diagnostics, for reporting, and as an error matching ErrInvalidConfig.
func (b *Block) Decode(spec hcldec.Spec) (cty.Value, hcl.Diagnostics, error) {
	val, diags := hcldec.Decode(b.Body, spec, nil)
	if diags.HasErrors() {
		return cty.NilVal, diags, errors.Wrapf(errors.ErrInvalidConfig, "%s at %s: %s", b.Kind, b.Range, diags.Error())
	}
	return val, diags, nil
}
