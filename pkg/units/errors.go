package units

import "errors"

var (
	// ErrUnknownUnit is returned when a unit key is not a member of the
	// requested kind's table. A correctly wired caller never sees it.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownKind is returned when a kind name does not match any table.
	ErrUnknownKind = errors.New("unknown quantity kind")
)
