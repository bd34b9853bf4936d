// Package globals holds the pass-scoped buffers of program-wide artefacts:
// global declarations, libraries, build flags, defines and platform options.
//
// Every buffer is keyed and keeps first-insertion order. Adding an identical
// payload under an existing key is a no-op; a different payload fails with
// errors.ErrConflictingGlobalDefinition. A conflict is pass-fatal, so the
// first one is recorded and handed to OnConflict even when the caller drops
// the returned error.
package globals

import (
	"github.com/Masterminds/semver/v3"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// Library is a build dependency of the generated program.
type Library struct {
	Name       string
	Version    string
	Repository string
}

// Define is one preprocessor definition. An empty Value renders as a bare
// `#define NAME`.
type Define struct {
	Name  string
	Value string
}

// Option is one platform build option.
type Option struct {
	Key   string
	Value string
}

// Buffers collects global artefacts for one pass.
type Buffers struct {
	// OnConflict, when set, receives the first conflict of the pass.
	OnConflict func(error)

	declarations *orderedmap.OrderedMap[string, string]
	libraries    *orderedmap.OrderedMap[string, Library]
	buildFlags   *orderedmap.OrderedMap[string, struct{}]
	defines      *orderedmap.OrderedMap[string, string]
	options      *orderedmap.OrderedMap[string, string]
	conflict     error
}

// New creates empty buffers.
func New() *Buffers {
	return &Buffers{
		declarations: orderedmap.New[string, string](),
		libraries:    orderedmap.New[string, Library](),
		buildFlags:   orderedmap.New[string, struct{}](),
		defines:      orderedmap.New[string, string](),
		options:      orderedmap.New[string, string](),
	}
}

// Err returns the first conflict recorded in the pass.
func (b *Buffers) Err() error { return b.conflict }

func (b *Buffers) fail(err error) error {
	if b.conflict == nil {
		b.conflict = err
		if b.OnConflict != nil {
			b.OnConflict(err)
		}
	}
	return err
}

// AddDeclaration adds a global declaration under key, usually the declared
// C++ name. The statement is rendered immediately so the stored payload is
// plain text.
func (b *Buffers) AddDeclaration(key string, stmt cpp.Statement) error {
	text, err := cpp.RenderStatement(stmt)
	if err != nil {
		return err
	}
	if prev, ok := b.declarations.Get(key); ok {
		if prev == text {
			return nil
		}
		return b.fail(errors.WithDetailf(
			errors.Wrapf(errors.ErrConflictingGlobalDefinition, "global %q is declared twice with different definitions", key),
			"first: %s\nsecond: %s", prev, text,
		))
	}
	b.declarations.Set(key, text)
	return nil
}

// AddLibrary adds a library requirement. Versions are compared after
// normalisation; a library added without a version adopts the version of
// any other entry with the same name.
func (b *Buffers) AddLibrary(lib Library) error {
	lib.Version = normalizeVersion(lib.Version)
	prev, ok := b.libraries.Get(lib.Name)
	if !ok {
		b.libraries.Set(lib.Name, lib)
		return nil
	}

	if prev.Repository != lib.Repository && prev.Repository != "" && lib.Repository != "" {
		return b.fail(errors.Wrapf(errors.ErrConflictingGlobalDefinition,
			"library %q: repository %q conflicts with %q", lib.Name, lib.Repository, prev.Repository))
	}
	if prev.Version != lib.Version && prev.Version != "" && lib.Version != "" {
		return b.fail(errors.WithHint(
			errors.Wrapf(errors.ErrConflictingGlobalDefinition,
				"library %q: version %q conflicts with %q", lib.Name, lib.Version, prev.Version),
			"pin one version of the library for the whole configuration",
		))
	}

	merged := prev
	if merged.Version == "" {
		merged.Version = lib.Version
	}
	if merged.Repository == "" {
		merged.Repository = lib.Repository
	}
	b.libraries.Set(lib.Name, merged)
	return nil
}

// normalizeVersion canonicalises a semantic version or constraint so that
// `1.2` and `1.2.0` compare equal. Anything else is kept verbatim.
func normalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	if sv, err := semver.NewVersion(v); err == nil {
		return sv.String()
	}
	if c, err := semver.NewConstraint(v); err == nil {
		return c.String()
	}
	return v
}

// AddBuildFlag adds a compiler flag. Flags are a plain set.
func (b *Buffers) AddBuildFlag(flag string) {
	if _, ok := b.buildFlags.Get(flag); !ok {
		b.buildFlags.Set(flag, struct{}{})
	}
}

// AddDefine adds a preprocessor definition.
func (b *Buffers) AddDefine(name, value string) error {
	if prev, ok := b.defines.Get(name); ok {
		if prev == value {
			return nil
		}
		return b.fail(errors.Wrapf(errors.ErrConflictingGlobalDefinition,
			"define %q: value %q conflicts with %q", name, value, prev))
	}
	b.defines.Set(name, value)
	return nil
}

// AddPlatformOption adds a platform build option.
func (b *Buffers) AddPlatformOption(key, value string) error {
	if prev, ok := b.options.Get(key); ok {
		if prev == value {
			return nil
		}
		return b.fail(errors.Wrapf(errors.ErrConflictingGlobalDefinition,
			"platform option %q: value %q conflicts with %q", key, value, prev))
	}
	b.options.Set(key, value)
	return nil
}
