package playlist

import (
	"strconv"
	"strings"

	"github.com/handiism/tunesort/internal/model"
	"github.com/samber/lo"
)

// Matches reports whether the named field of song satisfies cond.
//
// Matching never fails: an unknown field name, or a condition that makes no
// sense for the field's kind (a Range on a string), simply yields false.
// An ExactInt on a string field compares its decimal form against the raw
// tag, so tracknumber: 1 matches "1" but not "1/12".
//
//	Matches(song, "genre", AnyOf{Values: []string{"Jazz", "Pop"}})
//	Matches(song, "rating", Between(5, 10))
func Matches(song model.Song, fieldName string, cond Condition) bool {
	field, ok := ParseField(fieldName)
	if !ok {
		return false
	}
	return matchField(song, field, cond)
}

func matchField(song model.Song, field Field, cond Condition) bool {
	if all, ok := cond.(All); ok {
		for _, c := range all.Conditions {
			if !matchField(song, field, c) {
				return false
			}
		}
		return true
	}

	switch field.Kind() {
	case KindString:
		return matchString(field.stringValue(song), cond)
	case KindInt:
		return matchInt(field.intValue(song), cond)
	case KindList:
		return matchList(field.listValue(song), cond)
	default:
		return false
	}
}

func matchString(v string, cond Condition) bool {
	switch c := cond.(type) {
	case ExactString:
		return v == c.Value
	case ExactInt:
		return v == strconv.Itoa(c.Value)
	case AnyOf:
		return c.Has(v)
	case Unconstrained:
		return true
	default:
		return false
	}
}

func matchInt(v int, cond Condition) bool {
	switch c := cond.(type) {
	case ExactInt:
		return v == c.Value
	case Range:
		return c.Contains(v)
	case ExactString:
		n, err := strconv.Atoi(strings.TrimSpace(c.Value))
		return err == nil && n == v
	case AnyOf:
		return c.Has(strconv.Itoa(v))
	case Unconstrained:
		return true
	default:
		return false
	}
}

func matchList(v []string, cond Condition) bool {
	switch c := cond.(type) {
	case ExactString:
		return lo.Contains(v, c.Value)
	case ExactInt:
		return lo.Contains(v, strconv.Itoa(c.Value))
	case AnyOf:
		return len(lo.Intersect(v, c.Values)) > 0
	case Unconstrained:
		return true
	default:
		return false
	}
}

// Matches reports whether song satisfies every condition of d.
//
// A definition without conditions matches every song.
func (d Definition) Matches(song model.Song) bool {
	for name, cond := range d.Conditions {
		if !Matches(song, name, cond) {
			return false
		}
	}
	return true
}
