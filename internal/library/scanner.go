package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/tunesort/internal/audio"
	ioutils "github.com/handiism/tunesort/internal/io"
	"github.com/handiism/tunesort/internal/model"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// SongReader extracts a Song from an audio file.
//
// *audio.Reader implements SongReader.
type SongReader interface {
	ReadSong(path string) (model.Song, error)
}

// ScanOptions configures a Scanner.
type ScanOptions struct {
	// Rename moves every file to its canonical name built from
	// FileNameFormat.
	Rename bool

	// FileNameFormat is the template for canonical names, see
	// model.Song.FileName.
	FileNameFormat string

	// MaxConcurrent bounds parallel tag reads. Values below 1 mean 1.
	MaxConcurrent int
}

// Scanner builds the song library of a music directory.
//
// Example:
//
//	scanner := library.NewScanner(audio.NewReader(nil), library.ScanOptions{
//	    Rename:         true,
//	    FileNameFormat: "{artist} - {album} - {disc} - {track} - {title}",
//	    MaxConcurrent:  8,
//	}, nil)
//	songs, err := scanner.Scan(ctx, "music")
type Scanner struct {
	reader    SongReader
	opts      ScanOptions
	cmp       *Comparator
	onWarning func(path, message string)

	total int32
	done  int32
}

// NewScanner creates a Scanner.
//
// onWarning receives non-fatal problems such as failed renames. It may be nil.
func NewScanner(reader SongReader, opts ScanOptions, onWarning func(path, message string)) *Scanner {
	return &Scanner{
		reader:    reader,
		opts:      opts,
		cmp:       NewComparator(nil),
		onWarning: onWarning,
	}
}

// WithComparator sets the comparator used to order the scan result.
func (s *Scanner) WithComparator(c *Comparator) *Scanner {
	s.cmp = c
	return s
}

// Progress returns the number of files read so far and the number found.
func (s *Scanner) Progress() (done, total int) {
	return int(atomic.LoadInt32(&s.done)), int(atomic.LoadInt32(&s.total))
}

// Scan reads every supported file directly inside dir.
//
// Subdirectories and files with other extensions are skipped. The first
// read error (including an extension mismatch) aborts the scan. When
// renaming is enabled, files are renamed one at a time after all tags have
// been read; a failed rename is reported through onWarning and the song
// keeps its old path.
//
// The songs are returned in library order.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]model.Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading music directory: %w", err)
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), e.Type().IsRegular() && audio.IsSupported(e.Name())
	})
	atomic.StoreInt32(&s.total, int32(len(names)))
	atomic.StoreInt32(&s.done, 0)

	songs := make([]model.Song, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.opts.MaxConcurrent, 1))

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			song, err := s.reader.ReadSong(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			song.Path = name
			songs[i] = song
			atomic.AddInt32(&s.done, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.opts.Rename {
		for i := range songs {
			songs[i] = s.rename(dir, songs[i])
		}
	}

	s.cmp.Sort(songs)
	return songs, nil
}

// rename moves the song's file to its canonical name.
func (s *Scanner) rename(dir string, song model.Song) model.Song {
	target := song.FileName(s.opts.FileNameFormat, filepath.Ext(song.Path))
	if err := ioutils.RenameFile(dir, song.Path, target); err != nil {
		s.warn(filepath.Join(dir, song.Path), fmt.Sprintf("cannot rename to %q: %v", target, err))
		return song
	}
	song.Path = target
	return song
}

func (s *Scanner) warn(path, message string) {
	if s.onWarning != nil {
		s.onWarning(path, message)
	}
}
