// Package organize provides the orchestration logic of a tunesort run.
//
// # Manager
//
// The Manager coordinates the entire process:
//
//  1. Load playlist definitions and report their warnings
//  2. Scan the music directory (or load a songs dump)
//  3. Rename files to their canonical name (optional)
//  4. Dump the library to YAML (optional)
//  5. Select, sort and write every playlist concurrently
//
// # Basic Usage
//
//	manager := organize.NewManager(settings, organize.Options{}, func(event organize.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.WriteSongs()
//	...
//	err = manager.GeneratePlaylists(ctx)
//
// # Concurrency
//
// The Manager uses configurable concurrency limits:
//   - MaxConcurrentReads: how many audio files are read in parallel
//   - MaxConcurrentPlaylists: how many playlists are written in parallel
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message  string
//	    Level    ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Playlist string
//	    Tracks   int
//	    Path     string
//	}
//
// The callback may be invoked from several goroutines at once.
package organize
