package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/tunesort/internal/model"
)

func TestPlaylistWriter_M3U8(t *testing.T) {
	creator := NewPlaylistWriter(FormatM3U8, "../music", false)

	content := creator.Render("Good", createTestSongs())

	want := "../music/track1.flac\n../music/track2.mp3\n"
	if content != want {
		t.Errorf("Render() = %q, want %q", content, want)
	}
}

func TestPlaylistWriter_PrefixTrailingSlash(t *testing.T) {
	creator := NewPlaylistWriter(FormatM3U8, "../music/", false)

	if got := creator.Entry(model.Song{Path: "a.flac"}); got != "../music/a.flac" {
		t.Errorf("Entry() = %q, want %q", got, "../music/a.flac")
	}
}

func TestPlaylistWriter_NoPrefix(t *testing.T) {
	creator := NewPlaylistWriter(FormatM3U8, "", false)

	if got := creator.Entry(model.Song{Path: "a.flac"}); got != "a.flac" {
		t.Errorf("Entry() = %q, want %q", got, "a.flac")
	}
}

func TestPlaylistWriter_M3UExtended(t *testing.T) {
	creator := NewPlaylistWriter(FormatM3U, "../music", true)

	content := creator.Render("Good", createTestSongs())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Test Artist - track1\n") {
		t.Error("Extended M3U should contain #EXTINF with artist and title")
	}
}

func TestPlaylistWriter_PLS(t *testing.T) {
	creator := NewPlaylistWriter(FormatPLS, "../music", false)

	content := creator.Render("Good", createTestSongs())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=../music/track1.flac") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistWriter_WPL(t *testing.T) {
	creator := NewPlaylistWriter(FormatWPL, "../music", false)

	content := creator.Render("Good", createTestSongs())

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>Good</title>") {
		t.Error("WPL should contain the playlist name")
	}
	if !strings.Contains(content, "<media src=\"../music/track1.flac\"/>") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistWriter_ZPL(t *testing.T) {
	creator := NewPlaylistWriter(FormatZPL, "../music", false)

	content := creator.Render("Good", createTestSongs())

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, "albumTitle=\"Test Album\"") {
		t.Error("ZPL should contain albumTitle attribute")
	}
}

func TestPlaylistWriter_XMLEscape(t *testing.T) {
	songs := []model.Song{{
		Title:  "Track & \"Quote\"",
		Artist: []string{"Artist & Co"},
		Album:  "Album <Special>",
		Path:   "a&b.flac",
	}}

	creator := NewPlaylistWriter(FormatZPL, "../music", false)
	content := creator.Render("Rock & Roll", songs)

	if strings.Contains(content, "<Special>") {
		t.Error("ZPL should escape < and >")
	}
	if !strings.Contains(content, "a&amp;b.flac") {
		t.Error("ZPL should escape & in paths")
	}
	if !strings.Contains(content, "<title>Rock &amp; Roll</title>") {
		t.Error("ZPL should escape the playlist name")
	}
}

func TestPlaylistWriter_Write(t *testing.T) {
	dir := t.TempDir()
	creator := NewPlaylistWriter(FormatM3U8, "../music", false)

	path, err := creator.Write(dir, "Good", createTestSongs())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "Good.m3u8"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("playlist has %d lines, want 2", lines)
	}
}

func TestPlaylistWriter_WriteSanitizesName(t *testing.T) {
	dir := t.TempDir()
	creator := NewPlaylistWriter(FormatM3U8, "../music", false)

	path, err := creator.Write(dir, "Rock/Pop", nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "Rock$slash$Pop.m3u8"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    PlaylistFormat
		wantExt string
		wantErr bool
	}{
		{"", FormatM3U8, ".m3u8", false},
		{"m3u8", FormatM3U8, ".m3u8", false},
		{"M3U", FormatM3U, ".m3u", false},
		{".pls", FormatPLS, ".pls", false},
		{"wpl", FormatWPL, ".wpl", false},
		{"zpl", FormatZPL, ".zpl", false},
		{"xspf", FormatM3U8, ".m3u8", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlaylistFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlaylistFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if ext := got.Extension(); ext != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func createTestSongs() []model.Song {
	return []model.Song{
		{Title: "track1", Artist: []string{"Test Artist"}, Album: "Test Album", Path: "track1.flac"},
		{Title: "track2", Artist: []string{"Test Artist"}, Album: "Test Album", Path: "track2.mp3"},
	}
}
