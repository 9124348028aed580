// Package audio provides audio file services: tag extraction and playlist
// generation.
//
// # Tag Extraction
//
// Use the Reader to turn an audio file into a model.Song:
//
//	reader := audio.NewReader(func(path, msg string) {
//	    log.Printf("warning: %s: %s", path, msg)
//	})
//	song, err := reader.ReadSong("music/track.flac")
//
// The reader supports:
//   - MP3 (ID3v2, ratings and dates in TXXX frames)
//   - FLAC, Ogg Vorbis, Opus (Vorbis comments)
//   - M4A (rating and date stored as JSON in the comment atom)
//
// A file whose content does not match its extension yields
// ErrExtensionMismatch.
//
// # Playlist Generation
//
// Write ordered songs in various formats:
//
//	writer := audio.NewPlaylistWriter(audio.FormatM3U8, "../music", false)
//	path, err := writer.Write("playlists", "Good", songs)
//
// Supported formats:
//   - M3U8 (default, one relative path per line)
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
