package cfgid

import (
	"regexp"

	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// nameRegex matches a valid object id. Ids become C++ identifiers, so the
// same lexical rules apply.
var nameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ID identifies one declared object.
type ID struct {
	Name   string
	Type   cpp.Type
	Manual bool
}

// New returns a user-supplied id after validating its name.
func New(name string, typ cpp.Type) (ID, error) {
	if err := ValidateName(name); err != nil {
		return ID{}, err
	}
	return ID{Name: name, Type: typ, Manual: true}, nil
}

// Auto returns a generated id. Auto names only seed the symbol table, so
// they are not validated here.
func Auto(name string, typ cpp.Type) ID {
	return ID{Name: name, Type: typ}
}

// WithType returns a copy of id declared with typ.
func (id ID) WithType(typ cpp.Type) ID {
	id.Type = typ
	return id
}

// String returns the id name.
func (id ID) String() string { return id.Name }

// ValidateName checks that name can be used as a manual id.
func ValidateName(name string) error {
	if name == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "id cannot be empty")
	}
	if !nameRegex.MatchString(name) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "invalid id %q", name),
			"ids start with a letter or underscore and contain only letters, digits and underscores",
		)
	}
	return nil
}
