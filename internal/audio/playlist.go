package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/tunesort/internal/io"
	"github.com/handiism/tunesort/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U8: UTF-8 M3U, the default
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U8 creates .m3u8 files, one entry per line.
	FormatM3U8 PlaylistFormat = iota

	// FormatM3U creates .m3u files.
	// Can be extended with EXTINF lines for title info.
	FormatM3U

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// ParsePlaylistFormat converts a settings value such as "m3u8" or "pls".
func ParsePlaylistFormat(s string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "m3u8":
		return FormatM3U8, nil
	case "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	case "zpl":
		return FormatZPL, nil
	}
	return FormatM3U8, fmt.Errorf("unknown playlist format %q", s)
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatM3U:
		return ".m3u"
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u8"
	}
}

// PlaylistWriter renders ordered songs as playlist files.
//
// Every entry points at the song file relative to the playlist directory:
// the configured prefix (e.g. "../music") joined with the song's Path.
//
// Example:
//
//	writer := NewPlaylistWriter(FormatM3U8, "../music", false)
//	path, err := writer.Write("playlists", "Good", songs)
//
//	// playlists/Good.m3u8:
//	// ../music/A - X - 1 - 1 - T.flac
//	// ../music/B - Y - 1 - 2 - U.mp3
type PlaylistWriter struct {
	format   PlaylistFormat
	prefix   string
	extended bool // For M3U/M3U8: include EXTINF lines with artist/title
}

// NewPlaylistWriter creates a new PlaylistWriter.
//
// Parameters:
//   - format: The playlist format to generate
//   - prefix: Relative directory from the playlist directory to the music
//     directory; empty for entries without a directory part
//   - extended: For M3U formats, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistWriter(format PlaylistFormat, prefix string, extended bool) *PlaylistWriter {
	return &PlaylistWriter{
		format:   format,
		prefix:   strings.TrimRight(filepath.ToSlash(prefix), "/"),
		extended: extended,
	}
}

// Format returns the configured format.
func (p *PlaylistWriter) Format() PlaylistFormat {
	return p.format
}

// Write renders the playlist and stores it as dir/<name><ext>.
//
// Returns the path of the written file.
func (p *PlaylistWriter) Write(dir, name string, songs []model.Song) (string, error) {
	path := filepath.Join(dir, ioutils.SanitizeFileName(name)+p.format.Extension())
	if err := ioutils.WriteFile(path, []byte(p.Render(name, songs))); err != nil {
		return "", fmt.Errorf("writing playlist %s: %w", name, err)
	}
	return path, nil
}

// Render generates playlist content for songs in the given order.
func (p *PlaylistWriter) Render(name string, songs []model.Song) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(songs)
	case FormatWPL:
		return p.createWPL(name, songs)
	case FormatZPL:
		return p.createZPL(name, songs)
	default:
		return p.createM3U(songs)
	}
}

// Entry returns the playlist reference for one song.
func (p *PlaylistWriter) Entry(song model.Song) string {
	if p.prefix == "" {
		return song.Path
	}
	return p.prefix + "/" + song.Path
}

// createM3U generates an M3U/M3U8 playlist.
//
// Standard format:
//
//	../music/file1.flac
//	../music/file2.mp3
//
// Extended format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	../music/file1.flac
func (p *PlaylistWriter) createM3U(songs []model.Song) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, song := range songs {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", strings.Join(song.Artist, ", "), song.Title))
		}
		sb.WriteString(p.Entry(song) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=../music/file1.flac
//	Title1=Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistWriter) createPLS(songs []model.Song) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, song := range songs {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, p.Entry(song)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, song.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(songs)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistWriter) createWPL(name string, songs []model.Song) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range songs {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(p.Entry(song))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but carries album, artist and title attributes.
func (p *PlaylistWriter) createZPL(name string, songs []model.Song) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"tunesort\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(songs)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range songs {
		artist := strings.Join(song.Artist, ", ")
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(p.Entry(song)),
			escapeXML(song.Album),
			escapeXML(artist),
			escapeXML(song.Title),
			escapeXML(artist)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
