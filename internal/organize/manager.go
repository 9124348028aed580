package organize

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/handiism/tunesort/internal/audio"
	"github.com/handiism/tunesort/internal/config"
	ioutils "github.com/handiism/tunesort/internal/io"
	"github.com/handiism/tunesort/internal/library"
	"github.com/handiism/tunesort/internal/model"
	"github.com/handiism/tunesort/internal/playlist"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownPlaylist is returned by Preview for a name with no definition.
var ErrUnknownPlaylist = errors.New("no playlist with that name")

// ErrNotInitialized is returned when playlists are requested before
// Initialize succeeded.
var ErrNotInitialized = errors.New("manager not initialized")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a progress update.
//
// Playlist and Tracks are set for events about one playlist, Path for
// events about one audio file.
type ProgressEvent struct {
	Message  string
	Level    ProgressLevel
	Playlist string
	Tracks   int
	Path     string
}

// Options changes where the library comes from and whether anything is
// written.
type Options struct {
	// FromSongs loads the library from a songs dump instead of scanning
	// the music directory.
	FromSongs string

	// DryRun computes playlists without renaming or writing any file.
	DryRun bool
}

// Manager coordinates a run: scan the library, load the playlist
// definitions, write the playlists.
type Manager struct {
	settings *config.Settings
	opts     Options
	scanner  *library.Scanner
	engine   *playlist.Engine
	writer   *audio.PlaylistWriter

	songs   []model.Song
	defs    []playlist.Definition
	results []playlist.Result

	totalPlaylists   int32
	writtenPlaylists int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, opts Options, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		opts:       opts,
		engine:     playlist.NewEngine(library.NewComparator(nil)),
		onProgress: onProgress,
	}

	scanOpts := settings.ToScanOptions()
	if opts.DryRun {
		scanOpts.Rename = false
	}
	reader := audio.NewReader(m.fileWarning)
	m.scanner = library.NewScanner(reader, scanOpts, m.fileWarning)

	return m
}

// Initialize loads the playlist definitions and the song library.
//
// Definition warnings are reported as LevelWarning events. A missing
// playlist name, a duplicate name or an unreadable audio file is fatal.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.settings.Validate(); err != nil {
		return err
	}

	writer, err := m.settings.ToPlaylistWriter()
	if err != nil {
		return err
	}

	defs, err := playlist.LoadFile(m.settings.PlaylistsFile)
	if err != nil {
		return err
	}
	for _, def := range defs {
		for _, w := range def.Warnings() {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Playlist %s: %s", def.Name, w), Level: LevelWarning, Playlist: def.Name})
		}
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d playlist definitions from %s", len(defs), m.settings.PlaylistsFile), Level: LevelVerbose})

	songs, err := m.loadSongs(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.writer = writer
	m.defs = defs
	m.songs = songs
	m.results = nil
	m.mu.Unlock()

	return nil
}

func (m *Manager) loadSongs(ctx context.Context) ([]model.Song, error) {
	if m.opts.FromSongs != "" {
		songs, err := library.ReadSongs(m.opts.FromSongs)
		if err != nil {
			return nil, err
		}
		library.NewComparator(nil).Sort(songs)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d songs from %s", len(songs), m.opts.FromSongs), Level: LevelInfo})
		return songs, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", m.settings.MusicDir), Level: LevelVerbose})
	songs, err := m.scanner.Scan(ctx, m.settings.MusicDir)
	if err != nil {
		return nil, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d songs in %s", len(songs), m.settings.MusicDir), Level: LevelInfo})
	return songs, nil
}

// WriteSongs dumps the library to the configured songs file.
//
// Nothing is written in dry-run mode or when write_songs is off.
func (m *Manager) WriteSongs() error {
	if m.opts.DryRun || !m.settings.WriteSongs {
		return nil
	}

	m.mu.RLock()
	songs := m.songs
	m.mu.RUnlock()

	if err := library.WriteSongs(m.settings.SongsFile, songs); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", m.settings.SongsFile, err), Level: LevelError})
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %d songs to %s", len(songs), m.settings.SongsFile), Level: LevelVerbose})
	return nil
}

// GeneratePlaylists computes and writes every playlist.
//
// Playlists are processed in parallel, bounded by
// max_concurrent_playlists. Each written playlist emits one LevelSuccess
// event. The first write error cancels the remaining work.
func (m *Manager) GeneratePlaylists(ctx context.Context) error {
	m.mu.RLock()
	defs, songs, writer := m.defs, m.songs, m.writer
	m.mu.RUnlock()

	if writer == nil {
		return ErrNotInitialized
	}

	if !m.opts.DryRun {
		if err := ioutils.EnsureDir(m.settings.PlaylistDir); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
			return err
		}
	}

	atomic.StoreInt32(&m.totalPlaylists, int32(len(defs)))
	atomic.StoreInt32(&m.writtenPlaylists, 0)

	results := make([]playlist.Result, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentPlaylists, 1))

	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			selected := m.engine.Select(songs, def)
			results[i] = playlist.Result{Definition: def, Songs: selected}

			if err := m.writePlaylist(writer, def.Name, selected); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing playlist %s: %v", def.Name, err), Level: LevelError, Playlist: def.Name})
				return err
			}
			atomic.AddInt32(&m.writtenPlaylists, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	m.mu.Lock()
	m.results = results
	m.mu.Unlock()

	return nil
}

func (m *Manager) writePlaylist(writer *audio.PlaylistWriter, name string, songs []model.Song) error {
	if m.opts.DryRun {
		m.progress(ProgressEvent{
			Message:  fmt.Sprintf("Would write playlist: %s (%d tracks)", name, len(songs)),
			Level:    LevelInfo,
			Playlist: name,
			Tracks:   len(songs),
		})
		return nil
	}

	path, err := writer.Write(m.settings.PlaylistDir, name, songs)
	if err != nil {
		return err
	}

	m.progress(ProgressEvent{
		Message:  fmt.Sprintf("Wrote playlist: %s (%d tracks)", name, len(songs)),
		Level:    LevelSuccess,
		Playlist: name,
		Tracks:   len(songs),
		Path:     path,
	})
	return nil
}

// Preview returns the songs of one playlist without writing anything.
func (m *Manager) Preview(name string) ([]model.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.writer == nil {
		return nil, ErrNotInitialized
	}
	for _, def := range m.defs {
		if def.Name == name {
			return m.engine.Select(m.songs, def), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlaylist, name)
}

// Songs returns the library in canonical order.
func (m *Manager) Songs() []model.Song {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.songs
}

// Results returns the playlists computed by the last GeneratePlaylists.
func (m *Manager) Results() []playlist.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.results
}

// GetProgress returns how many playlists have been written and how many
// there are in total.
func (m *Manager) GetProgress() (written, total int32) {
	return atomic.LoadInt32(&m.writtenPlaylists), atomic.LoadInt32(&m.totalPlaylists)
}

// GetScanProgress returns how many audio files have been read and how many
// were found.
func (m *Manager) GetScanProgress() (done, total int) {
	return m.scanner.Progress()
}

// GetPlaylistNames returns the names of all loaded definitions, in file
// order.
func (m *Manager) GetPlaylistNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.defs))
	for i, def := range m.defs {
		names[i] = def.Name
	}
	return names
}

func (m *Manager) fileWarning(path, message string) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", path, message), Level: LevelWarning, Path: path})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
