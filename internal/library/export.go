package library

import (
	"bytes"
	"fmt"
	"os"

	ioutils "github.com/handiism/tunesort/internal/io"
	"github.com/handiism/tunesort/internal/model"
	"gopkg.in/yaml.v3"
)

// WriteSongs dumps the library to a YAML file as a list of songs.
//
// Example output:
//
//	- title: Come Together
//	  artist:
//	    - The Beatles
//	  album: Abbey Road
//	  genre:
//	    - Rock
//	  rating: 8
//	  discnumber: 1/1
//	  tracknumber: 1/17
//	  path: The Beatles - Abbey Road - 1 - 1 - Come Together.flac
//	  date_added: $unknown$
func WriteSongs(path string, songs []model.Song) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if songs == nil {
		songs = []model.Song{}
	}
	if err := enc.Encode(songs); err != nil {
		return fmt.Errorf("encoding songs: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding songs: %w", err)
	}

	if err := ioutils.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing songs file: %w", err)
	}
	return nil
}

// ReadSongs loads a library dumped by WriteSongs.
//
// Missing fields are filled with sentinels, so hand-edited dumps are
// accepted. The songs are returned in file order.
func ReadSongs(path string) ([]model.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading songs file: %w", err)
	}

	var raw []rawSong
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing songs file %s: %w", path, err)
	}

	songs := make([]model.Song, len(raw))
	for i, r := range raw {
		songs[i] = r.song()
	}
	return songs, nil
}

// rawSong mirrors model.Song with a nullable rating so a missing rating
// becomes model.NoRating instead of 0.
type rawSong struct {
	Title       string   `yaml:"title"`
	Artist      []string `yaml:"artist"`
	Album       string   `yaml:"album"`
	Genre       []string `yaml:"genre"`
	Rating      *int     `yaml:"rating"`
	DiscNumber  string   `yaml:"discnumber"`
	TrackNumber string   `yaml:"tracknumber"`
	Path        string   `yaml:"path"`
	DateAdded   string   `yaml:"date_added"`
}

func (r rawSong) song() model.Song {
	rating := model.NoRating
	if r.Rating != nil {
		rating = *r.Rating
	}
	return model.Song{
		Title:       r.Title,
		Artist:      r.Artist,
		Album:       r.Album,
		Genre:       r.Genre,
		Rating:      rating,
		DiscNumber:  r.DiscNumber,
		TrackNumber: r.TrackNumber,
		Path:        r.Path,
		DateAdded:   r.DateAdded,
	}.WithDefaults()
}
