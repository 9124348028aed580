package playlist

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Condition constrains one field of a song.
//
// Condition is a closed set of variants:
//   - ExactInt: the field equals an integer
//   - ExactString: the field equals (or, for lists, contains) a string
//   - Range: an integer within inclusive, optional bounds
//   - AnyOf: the field shares at least one value with a set
//   - Unconstrained: always satisfied
//   - All: every member condition is satisfied
//
// The unexported marker method keeps other packages from adding variants,
// so the switch in Matches stays exhaustive.
type Condition interface {
	fmt.Stringer
	condition()
}

// ExactInt matches a field equal to Value.
//
// In YAML: a bare scalar tagged as an integer, e.g. `rating: 8`.
type ExactInt struct {
	Value int
}

// ExactString matches a field equal to Value.
//
// For list fields (artist, genre) it tests membership.
//
// In YAML: any bare scalar that is not an integer, e.g. `album: Abbey Road`.
type ExactString struct {
	Value string
}

// Range matches an integer within [Min, Max]. A nil bound is open.
//
// In YAML: `rating: {min: 5, max: 10}`.
type Range struct {
	Min *int
	Max *int
}

// AnyOf matches when the field holds at least one of Values.
//
// In YAML: `genre: {any: [Pop, Rock]}` or a bare sequence.
type AnyOf struct {
	Values []string
}

// Unconstrained is satisfied by every song.
type Unconstrained struct{}

// All is satisfied when every member condition is.
//
// The loader produces it only for objects that carry both bounds and an
// `any` list, e.g. `rating: {min: 5, any: ["1"]}`.
type All struct {
	Conditions []Condition
}

func (ExactInt) condition()      {}
func (ExactString) condition()   {}
func (Range) condition()         {}
func (AnyOf) condition()         {}
func (Unconstrained) condition() {}
func (All) condition()           {}

// AtLeast returns a Range with only a lower bound.
func AtLeast(min int) Range {
	return Range{Min: &min}
}

// AtMost returns a Range with only an upper bound.
func AtMost(max int) Range {
	return Range{Max: &max}
}

// Between returns a Range with both bounds.
func Between(min, max int) Range {
	return Range{Min: &min, Max: &max}
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Has reports whether v is one of the values.
func (a AnyOf) Has(v string) bool {
	return slices.Contains(a.Values, v)
}

func (c ExactInt) String() string    { return strconv.Itoa(c.Value) }
func (c ExactString) String() string { return strconv.Quote(c.Value) }
func (Unconstrained) String() string { return "*" }

func (r Range) String() string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("%d..%d", *r.Min, *r.Max)
	case r.Min != nil:
		return fmt.Sprintf(">= %d", *r.Min)
	case r.Max != nil:
		return fmt.Sprintf("<= %d", *r.Max)
	default:
		return "*"
	}
}

func (a AnyOf) String() string {
	return "any of [" + strings.Join(a.Values, ", ") + "]"
}

func (a All) String() string {
	parts := make([]string, len(a.Conditions))
	for i, c := range a.Conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " and ")
}
