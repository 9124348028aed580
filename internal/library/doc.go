// Package library builds and orders the song collection of a music
// directory.
//
// # Library Order
//
// Comparator defines the canonical order used for the library itself and
// as the final tie-break of every playlist: artists, album, disc, track,
// title. Text is compared with a collation.Collator, so Latin names come
// before kana and Chinese names, which sort by pinyin.
//
//	c := library.NewComparator(nil)
//	c.Sort(songs)
//
// # Scanning
//
// Scanner reads the tags of every supported file in a directory in
// parallel and optionally renames files to a canonical name:
//
//	scanner := library.NewScanner(audio.NewReader(nil), library.ScanOptions{
//	    Rename:         true,
//	    FileNameFormat: "{artist} - {album} - {disc} - {track} - {title}",
//	    MaxConcurrent:  8,
//	}, nil)
//	songs, err := scanner.Scan(ctx, "music")
//
// # Dumping
//
// WriteSongs and ReadSongs store the library as YAML, so playlists can be
// regenerated without reading audio files again.
package library
