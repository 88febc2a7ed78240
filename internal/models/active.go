// Package models contains the ORM-mapped entities and their active (partially
// set) forms used for inserts and updates.
package models

import (
	"fmt"
	"sort"
)

// Active is a field value that is either set (to be written) or not set
// (left unchanged by the statement).
type Active[T any] struct {
	value T
	set   bool
}

// Set returns an active value marked for writing.
func Set[T any](v T) Active[T] {
	return Active[T]{value: v, set: true}
}

// NotSet returns an active value that will not be written.
func NotSet[T any]() Active[T] {
	return Active[T]{}
}

// Get returns the value and whether it is set.
func (a Active[T]) Get() (T, bool) {
	return a.value, a.set
}

// IsSet reports whether the value is marked for writing.
func (a Active[T]) IsSet() bool {
	return a.set
}

// Value returns the value, or the zero value when not set.
func (a Active[T]) Value() T {
	return a.value
}

// String implements fmt.Stringer.
func (a Active[T]) String() string {
	if !a.set {
		return "NotSet"
	}
	return fmt.Sprintf("Set(%v)", a.value)
}

// FromPtr converts an optional pointer into an active value (nil means NotSet).
func FromPtr[T any](p *T) Active[T] {
	if p == nil {
		return NotSet[T]()
	}
	return Set(*p)
}

// columns lists the set key column first, then the assigned columns by name.
func columns(keySet bool, key string, assigns map[string]any) []string {
	var cols []string
	if keySet {
		cols = append(cols, key)
	}
	rest := make([]string, 0, len(assigns))
	for col := range assigns {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}
