// Package playlist turns playlist definitions into ordered song lists.
//
// A definition names a playlist, constrains song fields and lists sort
// keys. Definitions are loaded from YAML:
//
//	defs, err := playlist.LoadFile("playlists.yaml")
//	for _, def := range defs {
//	    for _, w := range def.Warnings() {
//	        log.Printf("%s: %s", def.Name, w)
//	    }
//	}
//
// # Conditions
//
// Each condition maps a field name to one of:
//   - a bare scalar: ExactInt when tagged as an integer, ExactString otherwise
//   - an object with min and/or max: Range
//   - an object with any, or a bare list: AnyOf
//   - null: Unconstrained
//
// Field kinds decide how a condition is tested:
//   - title, album, discnumber, tracknumber, path, date_added: string
//   - rating: integer
//   - artist, genre: list of strings
//
// Unknown field names never match, so a playlist using one is empty.
//
// # Ordering
//
// The Engine filters songs and sorts them by the definition's sort keys
// (rating, title, album, date_added; "-" for descending), then by the
// library order of library.Comparator:
//
//	engine := playlist.NewEngine(nil)
//	songs := engine.Select(library, def)
package playlist
