package cfgid

import (
	"regexp"
	"strings"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// segmentRegex matches one segment of a kind, e.g. `sensor` or `http_request`.
var segmentRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Kind is a block discriminator: a domain and an optional platform.
type Kind struct {
	Domain   string
	Platform string
}

// ParseKind parses `domain` or `domain.platform`.
func ParseKind(raw string) (Kind, error) {
	if raw == "" {
		return Kind{}, errors.Wrap(errors.ErrInvalidConfig, "kind cannot be empty")
	}

	segments := strings.Split(raw, ".")
	if len(segments) > 2 {
		return Kind{}, errors.Wrapf(errors.ErrInvalidConfig, "kind %q has more than two segments", raw)
	}
	for _, s := range segments {
		if s == "" {
			return Kind{}, errors.Wrapf(errors.ErrInvalidConfig, "kind %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(s) {
			return Kind{}, errors.Wrapf(errors.ErrInvalidConfig, "invalid kind segment %q in %q", s, raw)
		}
	}

	k := Kind{Domain: segments[0]}
	if len(segments) == 2 {
		k.Platform = segments[1]
	}
	return k, nil
}

// MustParseKind is ParseKind for static registrations; it panics on error.
func MustParseKind(raw string) Kind {
	k, err := ParseKind(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// String serializes the kind into its canonical dotted form.
func (k Kind) String() string {
	if k.Platform == "" {
		return k.Domain
	}
	return k.Domain + "." + k.Platform
}

// HasPlatform reports whether the kind names a platform inside its domain.
func (k Kind) HasPlatform() bool { return k.Platform != "" }
