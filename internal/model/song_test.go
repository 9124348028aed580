package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1", 1},
		{"12", 12},
		{"3/12", 3},
		{" 4 ", 4},
		{"07", 7},
		{Unknown, UnknownNumber},
		{"", UnknownNumber},
		{"A", UnknownNumber},
		{"/5", UnknownNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseNumber(tt.input); got != tt.want {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSong_WithDefaults(t *testing.T) {
	song := Song{Title: "Intro", Genre: []string{"", "  "}, Rating: NoRating}.WithDefaults()

	want := Song{
		Title:       "Intro",
		Artist:      []string{Unknown},
		Album:       Unknown,
		Genre:       []string{Unknown},
		Rating:      NoRating,
		DiscNumber:  Unknown,
		TrackNumber: Unknown,
		DateAdded:   Unknown,
	}
	if diff := cmp.Diff(want, song); diff != "" {
		t.Errorf("WithDefaults() mismatch (-want +got):\n%s", diff)
	}
}

func TestSong_FileName(t *testing.T) {
	format := "{artist} - {album} - {disc} - {track} - {title}"

	tests := []struct {
		name string
		song Song
		ext  string
		want string
	}{
		{
			name: "plain",
			song: Song{Title: "Come Together", Artist: []string{"The Beatles"}, Album: "Abbey Road", DiscNumber: "1/1", TrackNumber: "1/17"},
			ext:  "flac",
			want: "The Beatles - Abbey Road - 1 - 1 - Come Together.flac",
		},
		{
			name: "multiple artists",
			song: Song{Title: "Song", Artist: []string{"A", "B"}, Album: "X", DiscNumber: "2", TrackNumber: "3"},
			ext:  ".mp3",
			want: "A;B - X - 2 - 3 - Song.mp3",
		},
		{
			name: "unknown numbers",
			song: Song{Title: "T", Artist: []string{"A"}, Album: "X", DiscNumber: Unknown, TrackNumber: "x"},
			ext:  "ogg",
			want: "A - X - $unknown$ - $unknown$ - T.ogg",
		},
		{
			name: "invalid characters",
			song: Song{Title: "What?", Artist: []string{"AC/DC"}, Album: "Live: 1991", DiscNumber: "1", TrackNumber: "1"},
			ext:  "mp3",
			want: "AC$slash$DC - Live$colon$ 1991 - 1 - 1 - What$questionmark$.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.FileName(format, tt.ext); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitMulti(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Rock", []string{"Rock"}},
		{"Rock;Pop", []string{"Rock", "Pop"}},
		{"Rock; Pop ;", []string{"Rock", "Pop"}},
		{"A\x00B", []string{"A", "B"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitMulti(tt.input)); diff != "" {
				t.Errorf("SplitMulti(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
