package library

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/tunesort/internal/model"
)

func TestWriteSongs_ReadSongs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.yaml")
	songs := []model.Song{
		{
			Title:       "Come Together",
			Artist:      []string{"The Beatles"},
			Album:       "Abbey Road",
			Genre:       []string{"Rock"},
			Rating:      8,
			DiscNumber:  "1/1",
			TrackNumber: "1/17",
			Path:        "The Beatles - Abbey Road - 1 - 1 - Come Together.flac",
			DateAdded:   "2024-01-02 03:04:05+0000",
		},
		model.Song{Title: "8", Artist: []string{"周杰伦"}, Rating: model.NoRating, Path: "x.mp3"}.WithDefaults(),
	}

	if err := WriteSongs(path, songs); err != nil {
		t.Fatalf("WriteSongs() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"title:", "artist:", "album:", "genre:", "rating:", "discnumber:", "tracknumber:", "path:", "date_added:"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("songs file lacks key %q", key)
		}
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs() error = %v", err)
	}
	if diff := cmp.Diff(songs, got); diff != "" {
		t.Errorf("ReadSongs() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSongs_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.yaml")
	content := "- title: Hand Edited\n  path: a.flac\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs() error = %v", err)
	}

	want := []model.Song{{
		Title:       "Hand Edited",
		Artist:      []string{model.Unknown},
		Album:       model.Unknown,
		Genre:       []string{model.Unknown},
		Rating:      model.NoRating,
		DiscNumber:  model.Unknown,
		TrackNumber: model.Unknown,
		Path:        "a.flac",
		DateAdded:   model.Unknown,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadSongs() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSongs_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.yaml")
	if err := WriteSongs(path, nil); err != nil {
		t.Fatalf("WriteSongs() error = %v", err)
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadSongs() = %d songs, want 0", len(got))
	}
}

func TestReadSongs_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadSongs(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadSongs(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("title: not a list\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSongs(bad); err == nil {
		t.Error("ReadSongs(mapping) error = nil, want error")
	}
}
