package units

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind is a physical quantity. Units within a kind are mutually
// convertible, units across kinds are not.
type Kind string

const (
	Length Kind = "length"
	Volume Kind = "volume"
	Weight Kind = "weight"
)

// Kinds returns all quantity kinds in canonical order.
func Kinds() []Kind {
	return []Kind{Length, Volume, Weight}
}

// ParseKind parses a kind name, ignoring case and surrounding spaces.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[k]; !ok {
		return "", pkgerrors.Wrapf(ErrUnknownKind, "%q", s)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}
