// Package ioutils provides file system helpers used by the scanner and the
// playlist writer.
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile("/playlists/Good.m3u8", []byte("../music/a.flac\n"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/playlists")
//
//	// Rename inside one directory, refusing to overwrite
//	err := ioutils.RenameFile("/music", "track01.flac", "A - B - 1 - 1 - C.flac")
//
// # Filename Sanitization
//
// Use SanitizeFileName to replace characters that file systems reject:
//
//	safe := ioutils.SanitizeFileName("AC/DC") // Returns "AC$slash$DC"
package ioutils
