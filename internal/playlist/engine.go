package playlist

import (
	"cmp"
	"slices"
	"strings"

	"github.com/handiism/tunesort/internal/library"
	"github.com/handiism/tunesort/internal/model"
	"github.com/samber/lo"
)

// Result is the ordered content of one playlist.
type Result struct {
	Definition Definition
	Songs      []model.Song
}

// Engine selects and orders songs for playlist definitions.
//
// The engine is pure: it never touches the file system and never mutates
// the songs it is given. Use audio.PlaylistWriter to persist a Result.
//
// Example:
//
//	engine := playlist.NewEngine(library.NewComparator(nil))
//	for _, res := range engine.Generate(songs, defs) {
//	    fmt.Printf("%s: %d tracks\n", res.Definition.Name, len(res.Songs))
//	}
type Engine struct {
	cmp *library.Comparator
}

// NewEngine creates an Engine that breaks sort ties with c.
// A nil comparator uses the default collator.
func NewEngine(c *library.Comparator) *Engine {
	if c == nil {
		c = library.NewComparator(nil)
	}
	return &Engine{cmp: c}
}

// Select returns the songs matching def, ordered by its sort keys.
//
// Songs equal under every sort key keep the library order defined by the
// comparator, so the output is deterministic whatever the input order.
func (e *Engine) Select(songs []model.Song, def Definition) []model.Song {
	selected := lo.Filter(songs, func(s model.Song, _ int) bool {
		return def.Matches(s)
	})

	keys := def.SortKeys()
	slices.SortStableFunc(selected, func(a, b model.Song) int {
		for _, key := range keys {
			c := e.compareKey(key.Field, a, b)
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return e.cmp.Compare(a, b)
	})

	return selected
}

// Generate computes every playlist, in the order of defs.
func (e *Engine) Generate(songs []model.Song, defs []Definition) []Result {
	results := make([]Result, len(defs))
	for i, def := range defs {
		results[i] = Result{Definition: def, Songs: e.Select(songs, def)}
	}
	return results
}

func (e *Engine) compareKey(field Field, a, b model.Song) int {
	switch field {
	case FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	case FieldTitle:
		return e.cmp.Collator().Compare(a.Title, b.Title)
	case FieldAlbum:
		return e.cmp.Collator().Compare(a.Album, b.Album)
	case FieldDateAdded:
		return strings.Compare(a.DateAdded, b.DateAdded)
	default:
		return 0
	}
}
