// Package config provides configuration management for tunesort.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Conversion to library.ScanOptions and audio.PlaylistWriter
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scans ./music, writes ./playlists/<name>.m3u8
//	// Entries are prefixed with ../music
//	// Files are renamed to "{artist} - {album} - {disc} - {track} - {title}"
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/tunesort.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.PlaylistFormat = "pls"
//	err := settings.Save("/path/to/tunesort.yaml")
//
// # Configuration Options
//
// Settings includes options for:
//   - Music, playlist and dump locations
//   - Playlist format and entry prefix
//   - Canonical file renaming
//   - Concurrency limits
package config
