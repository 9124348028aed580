package library

import (
	"cmp"
	"slices"

	"github.com/handiism/tunesort/internal/collation"
	"github.com/handiism/tunesort/internal/model"
)

// Comparator establishes the canonical library order.
//
// Songs are ordered by, in priority:
//  1. Artist list, element-wise, shorter list first on a shared prefix
//  2. Album
//  3. Disc number (unknown sorts last)
//  4. Track number (unknown sorts last)
//  5. Title
//
// Text is compared with the Collator. Rating, genre, path and date added
// never take part, so two songs may be order-equal without being identical.
type Comparator struct {
	col *collation.Collator
}

// NewComparator creates a Comparator using the given Collator.
//
// If col is nil, collation.Default() is used.
func NewComparator(col *collation.Collator) *Comparator {
	if col == nil {
		col = collation.Default()
	}
	return &Comparator{col: col}
}

// Collator returns the Collator used for text fields.
func (c *Comparator) Collator() *collation.Collator {
	return c.col
}

// Compare returns -1, 0 or +1. It is a total order and never fails.
func (c *Comparator) Compare(a, b model.Song) int {
	if r := c.CompareArtists(a.Artist, b.Artist); r != 0 {
		return r
	}
	if r := c.col.Compare(a.Album, b.Album); r != 0 {
		return r
	}
	if r := cmp.Compare(a.Disc(), b.Disc()); r != 0 {
		return r
	}
	if r := cmp.Compare(a.Track(), b.Track()); r != 0 {
		return r
	}
	return c.col.Compare(a.Title, b.Title)
}

// Equal reports whether a and b are order-equal.
func (c *Comparator) Equal(a, b model.Song) bool {
	return c.Compare(a, b) == 0
}

// CompareArtists compares artist lists element-wise; on a shared prefix the
// shorter list sorts first.
func (c *Comparator) CompareArtists(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if r := c.col.Compare(a[i], b[i]); r != 0 {
			return r
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Sort orders songs in place into canonical library order.
func (c *Comparator) Sort(songs []model.Song) {
	slices.SortStableFunc(songs, c.Compare)
}
