// Package units holds the static unit tables for every quantity kind.
//
// Each unit carries a linear scale factor relative to its kind's base unit
// and a display label. The tables are defined once and never mutated;
// accessors hand out copies.
package units

import (
	pkgerrors "github.com/pkg/errors"
)

// Unit is a member of exactly one kind's table.
type Unit struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

// Defaults is the pair of units a selector starts with.
type Defaults struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Lookup returns the unit identified by key within kind.
func Lookup(kind Kind, key string) (Unit, error) {
	byKey, ok := index[kind]
	if !ok {
		return Unit{}, pkgerrors.Wrapf(ErrUnknownKind, "%q", string(kind))
	}
	u, ok := byKey[key]
	if !ok {
		return Unit{}, pkgerrors.Wrapf(ErrUnknownUnit, "%q is not a %s unit", key, kind)
	}
	return u, nil
}

// FactorOf returns the scale factor of unit key in kind.
func FactorOf(kind Kind, key string) (float64, error) {
	u, err := Lookup(kind, key)
	if err != nil {
		return 0, err
	}
	return u.Factor, nil
}

// MustFactorOf is like FactorOf but panics on an unknown unit.
func MustFactorOf(kind Kind, key string) float64 {
	f, err := FactorOf(kind, key)
	if err != nil {
		panic(err)
	}
	return f
}

// LabelOf returns the display label of unit key in kind.
func LabelOf(kind Kind, key string) (string, error) {
	u, err := Lookup(kind, key)
	if err != nil {
		return "", err
	}
	return u.Label, nil
}

// UnitsOf returns the units of kind in declaration order. It returns nil
// for an unknown kind.
func UnitsOf(kind Kind) []Unit {
	list, ok := tables[kind]
	if !ok {
		return nil
	}
	out := make([]Unit, len(list))
	copy(out, list)
	return out
}

// IsMember reports whether key is a unit of kind.
func IsMember(kind Kind, key string) bool {
	_, err := Lookup(kind, key)
	return err == nil
}

// DefaultsOf returns the default selector pair for kind.
func DefaultsOf(kind Kind) (Defaults, error) {
	d, ok := defaults[kind]
	if !ok {
		return Defaults{}, pkgerrors.Wrapf(ErrUnknownKind, "%q", string(kind))
	}
	return d, nil
}
