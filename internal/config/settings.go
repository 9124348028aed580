package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/tunesort/internal/audio"
	"github.com/handiism/tunesort/internal/library"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Locations
	MusicDir      string `yaml:"music_dir"`
	PlaylistDir   string `yaml:"playlist_dir"`
	PlaylistsFile string `yaml:"playlists_file"`
	SongsFile     string `yaml:"songs_file"`

	// Library dump
	WriteSongs bool `yaml:"write_songs"`

	// Playlist settings
	PlaylistFormat string `yaml:"playlist_format"` // m3u8, m3u, pls, wpl, zpl
	M3UExtended    bool   `yaml:"m3u_extended"`
	PathPrefix     string `yaml:"path_prefix"`

	// File naming
	RenameFiles    bool   `yaml:"rename_files"`
	FileNameFormat string `yaml:"file_name_format"`

	// Concurrency
	MaxConcurrentReads     int `yaml:"max_concurrent_reads"`
	MaxConcurrentPlaylists int `yaml:"max_concurrent_playlists"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		MusicDir:      "music",
		PlaylistDir:   "playlists",
		PlaylistsFile: "playlists.yaml",
		SongsFile:     "songs.yaml",

		WriteSongs: true,

		PlaylistFormat: "m3u8",
		M3UExtended:    false,
		PathPrefix:     "../music",

		RenameFiles:    true,
		FileNameFormat: "{artist} - {album} - {disc} - {track} - {title}",

		MaxConcurrentReads:     8,
		MaxConcurrentPlaylists: 4,
	}
}

// Load reads settings from a YAML file.
//
// Keys absent from the file keep their default value. A missing file
// yields DefaultSettings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail late.
func (s *Settings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.MusicDir) == "" {
		problems = append(problems, "music_dir is empty")
	}
	if strings.TrimSpace(s.PlaylistDir) == "" {
		problems = append(problems, "playlist_dir is empty")
	}
	if _, err := audio.ParsePlaylistFormat(s.PlaylistFormat); err != nil {
		problems = append(problems, err.Error())
	}
	if s.RenameFiles && !strings.Contains(s.FileNameFormat, "{title}") {
		problems = append(problems, "file_name_format must contain {title}")
	}
	if s.MaxConcurrentReads < 1 {
		problems = append(problems, "max_concurrent_reads must be at least 1")
	}
	if s.MaxConcurrentPlaylists < 1 {
		problems = append(problems, "max_concurrent_playlists must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// ToPlaylistWriter builds the playlist writer described by the settings.
func (s *Settings) ToPlaylistWriter() (*audio.PlaylistWriter, error) {
	format, err := audio.ParsePlaylistFormat(s.PlaylistFormat)
	if err != nil {
		return nil, err
	}
	return audio.NewPlaylistWriter(format, s.PathPrefix, s.M3UExtended), nil
}

// ToScanOptions converts settings to library.ScanOptions.
func (s *Settings) ToScanOptions() library.ScanOptions {
	return library.ScanOptions{
		Rename:         s.RenameFiles,
		FileNameFormat: s.FileNameFormat,
		MaxConcurrent:  s.MaxConcurrentReads,
	}
}
