package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/google/go-cmp/cmp"
	"github.com/handiism/tunesort/internal/model"
)

// writeMP3 creates a file holding only an ID3v2.4 tag followed by padding.
func writeMP3(t *testing.T, path string, configure func(tag *id3v2.Tag)) {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	configure(tag)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(make([]byte, 256)); err != nil {
		t.Fatal(err)
	}
}

func TestReader_ReadSongMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Song.MP3")
	writeMP3(t, path, func(tag *id3v2.Tag) {
		tag.SetTitle("Come Together")
		tag.SetArtist("The Beatles;Billy Preston")
		tag.SetAlbum("Abbey Road")
		tag.SetGenre("Rock")
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, "1/1")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "1/17")
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "RATING", Value: "8",
		})
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "DATE_ADDED", Value: "2024-01-02 03:04:05+0000",
		})
	})

	song, err := NewReader(nil).ReadSong(path)
	if err != nil {
		t.Fatalf("ReadSong() error = %v", err)
	}

	want := model.Song{
		Title:       "Come Together",
		Artist:      []string{"The Beatles", "Billy Preston"},
		Album:       "Abbey Road",
		Genre:       []string{"Rock"},
		Rating:      8,
		DiscNumber:  "1/1",
		TrackNumber: "1/17",
		Path:        "Song.MP3",
		DateAdded:   "2024-01-02 03:04:05+0000",
	}
	if diff := cmp.Diff(want, song); diff != "" {
		t.Errorf("ReadSong() mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_MissingTagsUseSentinels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.mp3")
	writeMP3(t, path, func(tag *id3v2.Tag) {
		tag.SetTitle("Only Title")
	})

	song, err := NewReader(nil).ReadSong(path)
	if err != nil {
		t.Fatalf("ReadSong() error = %v", err)
	}

	if diff := cmp.Diff([]string{model.Unknown}, song.Artist); diff != "" {
		t.Errorf("Artist mismatch (-want +got):\n%s", diff)
	}
	if song.Rating != model.NoRating {
		t.Errorf("Rating = %d, want %d", song.Rating, model.NoRating)
	}
	if song.DiscNumber != model.Unknown || song.TrackNumber != model.Unknown {
		t.Errorf("Disc/Track = %q/%q, want sentinels", song.DiscNumber, song.TrackNumber)
	}
}

func TestReader_InvalidRatingWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rated.mp3")
	writeMP3(t, path, func(tag *id3v2.Tag) {
		tag.SetTitle("T")
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding: id3v2.EncodingUTF8, Description: "RATING", Value: "great",
		})
	})

	var warnings []string
	reader := NewReader(func(path, msg string) {
		warnings = append(warnings, msg)
	})

	song, err := reader.ReadSong(path)
	if err != nil {
		t.Fatalf("ReadSong() error = %v", err)
	}
	if song.Rating != model.NoRating {
		t.Errorf("Rating = %d, want %d", song.Rating, model.NoRating)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}

func TestReader_ExtensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.mp3")
	data := append([]byte("fLaC"), make([]byte, 256)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader(nil).ReadSong(path)
	if !errors.Is(err, ErrExtensionMismatch) {
		t.Errorf("ReadSong() error = %v, want ErrExtensionMismatch", err)
	}
}

func TestReader_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader(nil).ReadSong(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadSong() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.flac", true},
		{"a.FLAC", true},
		{"a.m4a", true},
		{"a.mp3", true},
		{"a.ogg", true},
		{"a.opus", true},
		{"a.wav", false},
		{"a.jpg", false},
		{"flac", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsSupported(tt.path); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReader_ApplyComment(t *testing.T) {
	tests := []struct {
		name        string
		comment     string
		wantGenre   []string
		wantRating  int
		wantDate    string
		wantWarning bool
	}{
		{
			name:       "full document",
			comment:    `{"lang": "ja", "genre": ["J-Pop", "Rock"], "rating": 9, "date_added": "2023-05-01 10:00:00+0900"}`,
			wantGenre:  []string{"J-Pop", "Rock"},
			wantRating: 9,
			wantDate:   "2023-05-01 10:00:00+0900",
		},
		{
			name:        "invalid json",
			comment:     `not json`,
			wantGenre:   []string{"Pop"},
			wantRating:  model.NoRating,
			wantWarning: true,
		},
		{
			name:        "empty comment",
			comment:     "",
			wantGenre:   []string{"Pop"},
			wantRating:  model.NoRating,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warned := false
			r := NewReader(func(string, string) { warned = true })
			song := model.Song{Genre: []string{"Pop"}, Rating: model.NoRating}

			r.applyComment("a.m4a", tt.comment, &song)

			if diff := cmp.Diff(tt.wantGenre, song.Genre); diff != "" {
				t.Errorf("Genre mismatch (-want +got):\n%s", diff)
			}
			if song.Rating != tt.wantRating {
				t.Errorf("Rating = %d, want %d", song.Rating, tt.wantRating)
			}
			if song.DateAdded != tt.wantDate {
				t.Errorf("DateAdded = %q, want %q", song.DateAdded, tt.wantDate)
			}
			if warned != tt.wantWarning {
				t.Errorf("warned = %v, want %v", warned, tt.wantWarning)
			}
		})
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		n, total int
		want     string
	}{
		{0, 0, ""},
		{3, 0, "3"},
		{3, 12, "3/12"},
	}

	for _, tt := range tests {
		if got := numberString(tt.n, tt.total); got != tt.want {
			t.Errorf("numberString(%d, %d) = %q, want %q", tt.n, tt.total, got, tt.want)
		}
	}
}
