package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTargetExists is returned by RenameFile when another file already
// uses the target name.
var ErrTargetExists = errors.New("rename target already exists")

// fileNameReplacer maps characters that are invalid in file names on
// common file systems to readable tokens.
var fileNameReplacer = strings.NewReplacer(
	"/", "$slash$",
	"\\", "$backslash$",
	"?", "$questionmark$",
	":", "$colon$",
	"|", "$bar$",
	"<", "$leq$",
	">", "$geq$",
	"\"", "$doublequote$",
	"*", "$asterisk$",
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	playlistContent := []byte("../music/a.flac\n")
//	err := WriteFile("/playlists/Good.m3u8", playlistContent)
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName replaces characters that are invalid in file names.
//
// Each of / \ ? : | < > " * becomes a $token$:
//
//	SanitizeFileName("AC/DC")       // Returns "AC$slash$DC"
//	SanitizeFileName("What?")       // Returns "What$questionmark$"
//	SanitizeFileName("Live: 1991")  // Returns "Live$colon$ 1991"
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RenameFile renames dir/oldName to dir/newName.
//
// Nothing happens when the names are equal. An existing file at the target
// is never overwritten; ErrTargetExists is returned instead.
func RenameFile(dir, oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	oldPath := filepath.Join(dir, oldName)
	newPath := filepath.Join(dir, newName)

	if target, err := os.Lstat(newPath); err == nil {
		// On case-insensitive file systems the target may be the source.
		source, serr := os.Lstat(oldPath)
		if serr != nil || !os.SameFile(source, target) {
			return fmt.Errorf("%s: %w", newName, ErrTargetExists)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Rename(oldPath, newPath)
}
