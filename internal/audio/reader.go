package audio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/handiism/tunesort/internal/model"
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// SupportedExtensions.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ErrExtensionMismatch is returned when the file content does not match
// its extension, e.g. a FLAC stream saved as .mp3.
var ErrExtensionMismatch = errors.New("file extension mismatch")

// SupportedExtensions lists the accepted extensions, lowercase, without dot.
var SupportedExtensions = []string{"flac", "m4a", "mp3", "ogg", "opus"}

// expectedTypes maps each extension to the container types it may hold.
var expectedTypes = map[string][]tag.FileType{
	"mp3":  {tag.MP3},
	"flac": {tag.FLAC},
	"ogg":  {tag.OGG},
	"opus": {tag.OGG},
	"m4a":  {tag.M4A, tag.ALAC, tag.M4B, tag.M4P},
}

// m4aComment is the JSON document stored in the comment atom of M4A files,
// which lack free-form rating and date fields.
type m4aComment struct {
	Genre     []string `json:"genre"`
	Rating    *int     `json:"rating"`
	DateAdded string   `json:"date_added"`
}

// Reader extracts Song records from audio files.
//
// Reader uses two libraries:
//   - id3v2 for MP3 files, including TXXX frames (RATING, DATE_ADDED)
//   - dhowden/tag for FLAC, Ogg Vorbis, Opus and M4A
//
// Example:
//
//	reader := NewReader(func(path, msg string) {
//	    log.Printf("%s: %s", path, msg)
//	})
//	song, err := reader.ReadSong("/music/track.flac")
type Reader struct {
	onWarning func(path, message string)
}

// NewReader creates a new Reader.
//
// onWarning receives non-fatal problems such as an invalid rating. It may be nil.
func NewReader(onWarning func(path, message string)) *Reader {
	return &Reader{onWarning: onWarning}
}

// Extension returns the lowercase extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsSupported reports whether path has one of SupportedExtensions.
func IsSupported(path string) bool {
	return slices.Contains(SupportedExtensions, Extension(path))
}

// ReadSong reads the tags of the file at path.
//
// The returned Song has sentinels in place of absent tags and its Path set
// to the base name of path.
//
// Returns ErrUnsupportedFormat for unknown extensions and
// ErrExtensionMismatch when the detected container disagrees with the
// extension.
func (r *Reader) ReadSong(path string) (model.Song, error) {
	ext := Extension(path)
	if !IsSupported(path) {
		return model.Song{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Song{}, err
	}
	defer f.Close()

	if err := verifyExtension(f, ext); err != nil {
		return model.Song{}, fmt.Errorf("%s: %w", path, err)
	}

	var song model.Song
	if ext == "mp3" {
		song, err = r.readID3(path)
	} else {
		song, err = r.readTags(path, f, ext)
	}
	if err != nil {
		return model.Song{}, fmt.Errorf("reading tags of %s: %w", path, err)
	}

	song.Path = filepath.Base(path)
	return song.WithDefaults(), nil
}

// verifyExtension sniffs the container type. Files that cannot be
// identified are accepted; the tag readers will report real damage.
func verifyExtension(f io.ReadSeeker, ext string) error {
	_, detected, err := tag.Identify(f)
	if err != nil || detected == tag.UnknownFileType {
		return nil
	}
	if !slices.Contains(expectedTypes[ext], detected) {
		return fmt.Errorf("%w: extension %s, detected %s", ErrExtensionMismatch, ext, detected)
	}
	return nil
}

// readID3 reads an MP3 file with the id3v2 library.
func (r *Reader) readID3(path string) (model.Song, error) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Song{}, err
	}
	defer id3.Close()

	user := userTextFrames(id3)

	return model.Song{
		Title:       id3.Title(),
		Artist:      model.SplitMulti(id3.Artist()),
		Album:       id3.Album(),
		Genre:       model.SplitMulti(id3.Genre()),
		DiscNumber:  id3.GetTextFrame("TPOS").Text,
		TrackNumber: id3.GetTextFrame("TRCK").Text,
		Rating:      r.parseRating(path, user["RATING"]),
		DateAdded:   user["DATE_ADDED"],
	}, nil
}

// userTextFrames collects TXXX frames keyed by upper-case description.
func userTextFrames(id3 *id3v2.Tag) map[string]string {
	out := make(map[string]string)
	for _, f := range id3.GetFrames(id3.CommonID("User defined text information frame")) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		out[strings.ToUpper(udtf.Description)] = udtf.Value
	}
	return out
}

// readTags reads FLAC, Ogg and M4A files with dhowden/tag.
func (r *Reader) readTags(path string, f io.ReadSeeker, ext string) (model.Song, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return model.Song{}, err
	}

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		r.warn(path, "no tags found")
		return model.Song{Rating: model.NoRating}, nil
	}
	if err != nil {
		return model.Song{}, err
	}

	raw := m.Raw()
	song := model.Song{
		Title:       m.Title(),
		Artist:      model.SplitMulti(m.Artist()),
		Album:       m.Album(),
		Genre:       model.SplitMulti(m.Genre()),
		DiscNumber:  firstNonEmpty(rawString(raw, "discnumber"), numberString(m.Disc())),
		TrackNumber: firstNonEmpty(rawString(raw, "tracknumber"), numberString(m.Track())),
		Rating:      model.NoRating,
	}

	if ext == "m4a" {
		r.applyComment(path, m.Comment(), &song)
		return song, nil
	}

	song.Rating = r.parseRating(path, rawString(raw, "rating"))
	song.DateAdded = rawString(raw, "date_added")
	return song, nil
}

// applyComment fills genre, rating and date added from the JSON comment.
func (r *Reader) applyComment(path, comment string, song *model.Song) {
	if strings.TrimSpace(comment) == "" {
		r.warn(path, "missing JSON comment")
		return
	}

	var c m4aComment
	if err := json.Unmarshal([]byte(comment), &c); err != nil {
		r.warn(path, fmt.Sprintf("invalid JSON comment: %v", err))
		return
	}

	if len(c.Genre) > 0 {
		song.Genre = c.Genre
	}
	if c.Rating != nil {
		song.Rating = *c.Rating
	}
	song.DateAdded = c.DateAdded
}

// parseRating converts a rating tag, reporting values that are present but
// not integers.
func (r *Reader) parseRating(path, value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.NoRating
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.warn(path, fmt.Sprintf("invalid RATING %q", value))
		return model.NoRating
	}
	return n
}

func (r *Reader) warn(path, message string) {
	if r.onWarning != nil {
		r.onWarning(path, message)
	}
}

// rawString returns raw[key] when it is a string.
func rawString(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// numberString renders a number/total pair, empty when n is 0.
func numberString(n, total int) string {
	switch {
	case n <= 0:
		return ""
	case total > 0:
		return fmt.Sprintf("%d/%d", n, total)
	default:
		return strconv.Itoa(n)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
