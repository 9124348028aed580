package playlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/handiism/tunesort/internal/collation"
	"github.com/handiism/tunesort/internal/library"
	"github.com/handiism/tunesort/internal/model"
)

func newTestEngine() *Engine {
	return NewEngine(library.NewComparator(collation.New()))
}

func rated(title string, rating int) model.Song {
	return model.Song{
		Title:  title,
		Artist: []string{"Artist"},
		Album:  "Album",
		Rating: rating,
	}.WithDefaults()
}

func titles(songs []model.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title
	}
	return out
}

func TestEngine_SelectMultiKey(t *testing.T) {
	songs := []model.Song{rated("B", 5), rated("A", 5), rated("Z", 3)}
	def := Definition{Name: "Good", SortBy: []string{"-rating", "title"}}

	got := titles(newTestEngine().Select(songs, def))

	want := []string{"A", "B", "Z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() order mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_SelectFilters(t *testing.T) {
	songs := []model.Song{rated("Low", 2), rated("Mid", 7), rated("High", 9)}
	def := Definition{
		Name:       "Good",
		SortBy:     []string{"rating"},
		Conditions: map[string]Condition{"rating": AtLeast(5)},
	}

	got := titles(newTestEngine().Select(songs, def))

	want := []string{"Mid", "High"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_EmptyConditionsUseLibraryOrder(t *testing.T) {
	songs := []model.Song{
		{Title: "Second", Artist: []string{"A"}, Album: "X", DiscNumber: "1", TrackNumber: "2"},
		{Title: "Bonus", Artist: []string{"A"}, Album: "X", TrackNumber: "1"},
		{Title: "First", Artist: []string{"A"}, Album: "X", DiscNumber: "1", TrackNumber: "1"},
		{Title: "Other", Artist: []string{"B"}, Album: "A", DiscNumber: "1", TrackNumber: "1"},
	}
	for i := range songs {
		songs[i] = songs[i].WithDefaults()
	}

	got := titles(newTestEngine().Select(songs, Definition{Name: "All"}))

	want := []string{"First", "Second", "Bonus", "Other"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_UnknownSortKeysIgnored(t *testing.T) {
	songs := []model.Song{rated("B", 1), rated("A", 2)}
	plain := Definition{Name: "P"}
	bogus := Definition{Name: "P", SortBy: []string{"-mood", "artist"}}

	e := newTestEngine()
	if diff := cmp.Diff(titles(e.Select(songs, plain)), titles(e.Select(songs, bogus))); diff != "" {
		t.Errorf("unknown sort keys changed order (-plain +bogus):\n%s", diff)
	}
}

func TestEngine_SortByDateAddedBytewise(t *testing.T) {
	a, b, c := rated("A", 1), rated("B", 1), rated("C", 1)
	a.DateAdded = "2024-03-01"
	b.DateAdded = "2023-12-31"
	c.DateAdded = "2024-01-15"

	got := titles(newTestEngine().Select([]model.Song{a, b, c}, Definition{Name: "New", SortBy: []string{"-date_added"}}))

	want := []string{"A", "C", "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_SortByTitleCollated(t *testing.T) {
	songs := []model.Song{rated("beta", 1), rated("晴天", 1), rated("Alpha", 1), rated("Échelle", 1)}

	got := titles(newTestEngine().Select(songs, Definition{Name: "T", SortBy: []string{"title"}}))

	want := []string{"Alpha", "beta", "Échelle", "晴天"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	songs := []model.Song{
		rated("B", 5), rated("A", 5), rated("Z", 3), rated("Q", 9), rated("A", 5),
	}
	songs[4].Artist = []string{"Other"}
	def := Definition{
		Name:       "Good",
		SortBy:     []string{"-rating"},
		Conditions: map[string]Condition{"rating": AtLeast(3)},
	}

	e := newTestEngine()
	once := e.Select(songs, def)
	twice := e.Select(once, def)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Select() not idempotent (-once +twice):\n%s", diff)
	}
}

func TestEngine_SelectDoesNotMutateInput(t *testing.T) {
	songs := []model.Song{rated("B", 1), rated("A", 2)}
	before := titles(songs)

	newTestEngine().Select(songs, Definition{Name: "P", SortBy: []string{"title"}})

	if diff := cmp.Diff(before, titles(songs)); diff != "" {
		t.Errorf("input reordered (-before +after):\n%s", diff)
	}
}

func TestEngine_Generate(t *testing.T) {
	songs := []model.Song{rated("A", 9), rated("B", 2)}
	defs := []Definition{
		{Name: "Good", Conditions: map[string]Condition{"rating": AtLeast(5)}},
		{Name: "Nothing", Conditions: map[string]Condition{"mood": ExactString{Value: "sad"}}},
		{Name: "All"},
	}

	results := newTestEngine().Generate(songs, defs)

	if len(results) != len(defs) {
		t.Fatalf("Generate() returned %d results, want %d", len(results), len(defs))
	}
	wantTitles := [][]string{{"A"}, {}, {"A", "B"}}
	for i, res := range results {
		if res.Definition.Name != defs[i].Name {
			t.Errorf("result %d name = %q, want %q", i, res.Definition.Name, defs[i].Name)
		}
		if diff := cmp.Diff(wantTitles[i], titles(res.Songs), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("result %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
