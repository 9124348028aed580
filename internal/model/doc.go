// Package model defines the song record shared by every part of tunesort.
//
// # Song
//
// Song holds the tags of one audio file. Absent values are replaced by
// sentinels so that comparisons never have to deal with missing data:
//
//	song := model.Song{Title: "Intro", Artist: nil}.WithDefaults()
//	fmt.Println(song.Artist) // [$unknown$]
//	fmt.Println(song.Disc()) // 9999
//
// # File Names
//
// FileName renders the canonical name used when renaming files:
//
//	name := song.FileName("{artist} - {album} - {disc} - {track} - {title}", "mp3")
//
// Available placeholders: {artist}, {album}, {disc}, {track}, {title}
package model
