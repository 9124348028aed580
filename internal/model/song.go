package model

import (
	"strconv"
	"strings"

	ioutils "github.com/handiism/tunesort/internal/io"
)

// Unknown is the sentinel stored in text fields whose tag is absent.
const Unknown = "$unknown$"

// UnknownNumber is the ordering value of a disc or track number that is
// absent or cannot be parsed. It sorts after every real number.
const UnknownNumber = 9999

// NoRating marks an absent or invalid rating.
const NoRating = -1

// ArtistSeparator joins multiple artists in file names and splits
// multi-value tags.
const ArtistSeparator = ";"

// Song is one audio file of the library, as extracted from its tags.
//
// A Song is built once per run and never mutated afterwards:
//   - Title, Album, DiscNumber, TrackNumber and DateAdded hold Unknown when absent
//   - Artist and Genre always hold at least one entry
//   - Rating is NoRating when absent or invalid
//   - Path is the base file name inside the music directory
//
// Example:
//
//	song := model.Song{
//	    Title:       "Come Together",
//	    Artist:      []string{"The Beatles"},
//	    Album:       "Abbey Road",
//	    DiscNumber:  "1/1",
//	    TrackNumber: "1/17",
//	}.WithDefaults()
//	song.Track() // 1
type Song struct {
	// Title is the track title.
	Title string `yaml:"title"`

	// Artist lists the performing artists in tag order.
	Artist []string `yaml:"artist"`

	// Album is the album title.
	Album string `yaml:"album"`

	// Genre lists the genres in tag order.
	Genre []string `yaml:"genre"`

	// Rating is the user rating, NoRating when absent.
	Rating int `yaml:"rating"`

	// DiscNumber is the raw disc tag, "N" or "N/M", or Unknown.
	DiscNumber string `yaml:"discnumber"`

	// TrackNumber is the raw track tag, "N" or "N/M", or Unknown.
	TrackNumber string `yaml:"tracknumber"`

	// Path is the file name without directory.
	Path string `yaml:"path"`

	// DateAdded is an opaque, machine generated timestamp.
	DateAdded string `yaml:"date_added"`
}

// WithDefaults returns a copy of s with sentinels in place of empty fields.
func (s Song) WithDefaults() Song {
	s.Title = orUnknown(s.Title)
	s.Album = orUnknown(s.Album)
	s.DiscNumber = orUnknown(s.DiscNumber)
	s.TrackNumber = orUnknown(s.TrackNumber)
	s.DateAdded = orUnknown(s.DateAdded)
	s.Artist = listOrUnknown(s.Artist)
	s.Genre = listOrUnknown(s.Genre)
	return s
}

// Disc returns the numeric disc number, UnknownNumber if absent.
func (s Song) Disc() int {
	return ParseNumber(s.DiscNumber)
}

// Track returns the numeric track number, UnknownNumber if absent.
func (s Song) Track() int {
	return ParseNumber(s.TrackNumber)
}

// ArtistString joins the artists with ArtistSeparator.
func (s Song) ArtistString() string {
	return strings.Join(s.Artist, ArtistSeparator)
}

// FileName computes the canonical file name of the song.
//
// The format supports these placeholders:
//   - {artist} - artists joined with ";"
//   - {album} - album title
//   - {disc}, {track} - numeric disc/track, or $unknown$
//   - {title} - track title
//
// ext is appended with a leading dot unless empty. Characters that are
// invalid in file names are replaced by ioutils.SanitizeFileName.
//
// Example:
//
//	song.FileName("{artist} - {album} - {disc} - {track} - {title}", "flac")
//	// "The Beatles - Abbey Road - 1 - 1 - Come Together.flac"
func (s Song) FileName(format, ext string) string {
	name := format
	name = strings.ReplaceAll(name, "{artist}", s.ArtistString())
	name = strings.ReplaceAll(name, "{album}", s.Album)
	name = strings.ReplaceAll(name, "{disc}", numberPart(s.DiscNumber))
	name = strings.ReplaceAll(name, "{track}", numberPart(s.TrackNumber))
	name = strings.ReplaceAll(name, "{title}", s.Title)

	ext = strings.TrimPrefix(ext, ".")
	if ext != "" {
		name += "." + ext
	}
	return ioutils.SanitizeFileName(name)
}

// ParseNumber returns the integer before any "/" in v.
//
// Sentinel or unparsable values yield UnknownNumber, so they order last.
//
//	ParseNumber("3")         // 3
//	ParseNumber("3/12")      // 3
//	ParseNumber("$unknown$") // 9999
func ParseNumber(v string) int {
	n, ok := leadingNumber(v)
	if !ok {
		return UnknownNumber
	}
	return n
}

func leadingNumber(v string) (int, bool) {
	if v == Unknown {
		return 0, false
	}
	if i := strings.IndexByte(v, '/'); i >= 0 {
		v = v[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// numberPart renders a disc or track number for file names.
func numberPart(v string) string {
	n, ok := leadingNumber(v)
	if !ok || n < 0 {
		return Unknown
	}
	return strconv.Itoa(n)
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}

func listOrUnknown(v []string) []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{Unknown}
	}
	return out
}

// SplitMulti splits a multi-value tag on ";" and NUL, dropping blanks.
func SplitMulti(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ';' || r == 0
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
