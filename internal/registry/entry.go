package registry

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// GeneratorFunc emits the code for one block. cfg is the block body decoded
// with the entry's schema.
type GeneratorFunc func(ctx context.Context, gen *codegen.Context, cfg cty.Value) error

// Entry describes how one block kind is validated and generated.
type Entry struct {
	// Key is the discriminator, `domain` or `domain.platform`.
	Key         string
	Description string
	// Schema decodes the block body.
	Schema hcldec.Spec
	// Type is the C++ type declared for the block's id. Nil means the block
	// declares no object of its own.
	Type cpp.Type
	// Config is a zero value of the struct Generate decodes into. When set,
	// Validate checks it against Schema.
	Config any
	// Generate emits the block.
	Generate GeneratorFunc
	// Provides returns the ids a block with the given id may declare besides
	// its own, such as child sensors. Nil means only its own id.
	Provides func(id string) []string
}

// IDs returns every id a block with the given id may declare, its own first.
func (e *Entry) IDs(id string) []string {
	ids := []string{id}
	if e.Provides != nil {
		ids = append(ids, e.Provides(id)...)
	}
	return ids
}

// Typed adapts a generator that takes its decoded config struct. Struct
// fields use `cty` tags; optional attributes are pointer fields.
func Typed[T any](fn func(ctx context.Context, gen *codegen.Context, cfg *T) error) GeneratorFunc {
	return func(ctx context.Context, gen *codegen.Context, val cty.Value) error {
		cfg := new(T)
		if err := gocty.FromCtyValue(val, cfg); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "decoding %s: %v", gen.Kind(), err)
		}
		return fn(ctx, gen, cfg)
	}
}
