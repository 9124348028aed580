package collation

import (
	"bytes"
	"cmp"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// scriptGroup orders whole scripts before the locale collation is consulted.
type scriptGroup int

const (
	// groupEnd marks the end of a string and sorts before every script.
	groupEnd scriptGroup = iota - 1
	// groupLatin covers Latin plus digits, punctuation, symbols and spaces.
	groupLatin
	groupHan
	groupKana
	groupOther
)

// Collator compares display strings (titles, albums, artists).
//
// The ordering is fixed: Latin text sorts before Han ideographs, which sort
// before Hiragana and Katakana, which sort before any other script. Inside a
// script the Chinese locale collation applies (pinyin for Han), ignoring
// case and diacritics at the primary level.
//
// A Collator is safe for concurrent use.
type Collator struct {
	mu      sync.Mutex
	col     *collate.Collator
	primary *collate.Collator
	buf     collate.Buffer
}

// New creates a Collator.
//
// Most callers should use Default; New exists so tests can hold their own
// instance.
func New() *Collator {
	return &Collator{
		col:     collate.New(language.Chinese),
		primary: collate.New(language.MustParse("zh-u-ks-level1")),
	}
}

var (
	defaultOnce     sync.Once
	defaultCollator *Collator
)

// Default returns the process-wide Collator, building it on first use.
func Default() *Collator {
	defaultOnce.Do(func() {
		defaultCollator = New()
	})
	return defaultCollator
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
//
// Both strings are cut into runs of a single script group and compared run
// by run at the primary level. When one run is a primary prefix of the
// other, the character that follows decides by group order, with the end of
// the string first. Strings equal at the primary level fall back to the
// first run whose full locale comparison differs.
func (c *Collator) Compare(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := splitRuns(a), splitRuns(b)
	tie := 0
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i].group != rb[i].group {
			return cmp.Compare(ra[i].group, rb[i].group)
		}
		if r := c.comparePrimary(ra, rb, i); r != 0 {
			return r
		}
		if tie == 0 {
			tie = c.compareText(ra[i].text, rb[i].text)
		}
	}
	if len(ra) != len(rb) {
		return cmp.Compare(len(ra), len(rb))
	}
	return tie
}

// comparePrimary compares run i of both strings, which share a group, at the
// primary level.
func (c *Collator) comparePrimary(ra, rb []run, i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.buf.Reset()

	ka := c.primary.KeyFromString(&c.buf, ra[i].text)
	kb := c.primary.KeyFromString(&c.buf, rb[i].text)
	switch {
	case bytes.Equal(ka, kb):
		return 0
	case bytes.HasPrefix(kb, ka):
		return cmp.Compare(nextGroup(ra, i), ra[i].group)
	case bytes.HasPrefix(ka, kb):
		return cmp.Compare(rb[i].group, nextGroup(rb, i))
	}
	return bytes.Compare(ka, kb)
}

// nextGroup returns the group of the run after i, or groupEnd.
func nextGroup(runs []run, i int) scriptGroup {
	if i+1 < len(runs) {
		return runs[i+1].group
	}
	return groupEnd
}

func (c *Collator) compareText(a, b string) int {
	if a == b {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col.CompareString(a, b)
}

type run struct {
	group scriptGroup
	text  string
}

// splitRuns cuts s into maximal substrings of one script group.
func splitRuns(s string) []run {
	var runs []run
	start := 0
	current := groupEnd
	for i, r := range s {
		g := groupOf(r)
		if g != current {
			if i > start {
				runs = append(runs, run{group: current, text: s[start:i]})
			}
			start, current = i, g
		}
	}
	if len(s) > start {
		runs = append(runs, run{group: current, text: s[start:]})
	}
	return runs
}

func groupOf(r rune) scriptGroup {
	switch {
	case r < 0x80:
		return groupLatin
	case unicode.Is(unicode.Han, r):
		return groupHan
	case isKana(r):
		return groupKana
	case unicode.In(r, unicode.Latin, unicode.Common, unicode.Inherited):
		return groupLatin
	}
	return groupOther
}

// isKana reports Hiragana, Katakana and the marks shared by both
// (prolonged sound mark, iteration marks, halfwidth forms).
func isKana(r rune) bool {
	switch {
	case unicode.In(r, unicode.Hiragana, unicode.Katakana):
		return true
	case r >= 0x3099 && r <= 0x309C, r == 0x30FC, r == 0x30FD, r == 0x30FE:
		return true
	case r >= 0xFF70 && r <= 0xFF9F:
		return true
	}
	return false
}
