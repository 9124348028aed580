package playlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingName is returned when a playlist definition has no usable name.
var ErrMissingName = errors.New("playlist name is missing")

// ErrDuplicateName is returned when two definitions share a name.
var ErrDuplicateName = errors.New("duplicate playlist name")

// Definition describes one playlist: which songs it holds and in what order.
//
// Example (YAML):
//
//	playlists:
//	  - name: Good
//	    sort_by: [-rating, title]
//	    conditions:
//	      rating: {min: 8}
//	      genre: {any: [Pop, Rock]}
type Definition struct {
	// Name is the playlist name, also used as output file stem.
	Name string

	// Conditions maps field names to the condition the field must satisfy.
	Conditions map[string]Condition

	// SortBy lists sort keys, most significant first. A leading "-"
	// sorts that key descending.
	SortBy []string

	// unknownKeys holds "field.key" entries for keys inside condition
	// objects that are neither min, max nor any.
	unknownKeys []string
}

// SortKey is one parsed sort_by entry.
type SortKey struct {
	Field      Field
	Descending bool
}

// SortKeys parses SortBy.
//
// Entries naming a field outside rating, title, album and date_added are
// skipped.
func (d Definition) SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(d.SortBy))
	for _, entry := range d.SortBy {
		name, desc := parseSortEntry(entry)
		field, ok := ParseField(name)
		if !ok || !field.Sortable() {
			continue
		}
		keys = append(keys, SortKey{Field: field, Descending: desc})
	}
	return keys
}

func parseSortEntry(entry string) (string, bool) {
	entry = strings.TrimSpace(entry)
	if rest, ok := strings.CutPrefix(entry, "-"); ok {
		return strings.TrimSpace(rest), true
	}
	return entry, false
}

// Warnings lists configuration problems that do not prevent the playlist
// from being generated: unknown condition fields (the playlist will be
// empty), unknown sort keys (ignored) and unknown keys inside condition
// objects (ignored).
func (d Definition) Warnings() []string {
	var warnings []string

	for name := range d.Conditions {
		if _, ok := ParseField(name); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown condition field %q matches no song", name))
		}
	}
	slices.Sort(warnings)

	for _, key := range d.unknownKeys {
		warnings = append(warnings, fmt.Sprintf("unknown key %q in condition ignored", key))
	}

	for _, entry := range d.SortBy {
		name, _ := parseSortEntry(entry)
		if field, ok := ParseField(name); !ok || !field.Sortable() {
			warnings = append(warnings, fmt.Sprintf("unknown sort key %q ignored", entry))
		}
	}

	return warnings
}

// definitionFile is the top-level layout of a playlists file.
type definitionFile struct {
	Playlists []rawDefinition `yaml:"playlists"`
}

// rawDefinition keeps the nodes so scalar tags survive decoding.
type rawDefinition struct {
	Name       yaml.Node `yaml:"name"`
	SortBy     yaml.Node `yaml:"sort_by"`
	Conditions yaml.Node `yaml:"conditions"`
}

// LoadFile reads playlist definitions from a YAML file.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening playlists file: %w", err)
	}
	defer f.Close()

	defs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Decode reads playlist definitions from YAML, in file order.
//
// A definition without a name fails with ErrMissingName; two definitions
// with the same name fail with ErrDuplicateName.
func Decode(r io.Reader) ([]Definition, error) {
	var file definitionFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing playlists: %w", err)
	}

	defs := make([]Definition, 0, len(file.Playlists))
	seen := make(map[string]int, len(file.Playlists))
	for i, raw := range file.Playlists {
		def, err := parseDefinition(raw)
		if err != nil {
			return nil, fmt.Errorf("playlist %d: %w", i+1, err)
		}
		if first, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("playlist %d: %w: %q already used by playlist %d", i+1, ErrDuplicateName, def.Name, first)
		}
		seen[def.Name] = i + 1
		defs = append(defs, def)
	}
	return defs, nil
}

func parseDefinition(raw rawDefinition) (Definition, error) {
	name := resolve(&raw.Name)
	if name.Kind != yaml.ScalarNode || name.Tag == "!!null" || strings.TrimSpace(name.Value) == "" {
		return Definition{}, ErrMissingName
	}

	def := Definition{
		Name:       strings.TrimSpace(name.Value),
		Conditions: make(map[string]Condition),
	}

	sortBy, err := parseSortBy(resolve(&raw.SortBy))
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", def.Name, err)
	}
	def.SortBy = sortBy

	conds := resolve(&raw.Conditions)
	switch {
	case isAbsent(conds):
	case conds.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(conds.Content); i += 2 {
			field := conds.Content[i].Value
			cond, unknown, err := parseCondition(resolve(conds.Content[i+1]))
			if err != nil {
				return Definition{}, fmt.Errorf("%s: condition %q: %w", def.Name, field, err)
			}
			for _, key := range unknown {
				def.unknownKeys = append(def.unknownKeys, field+"."+key)
			}
			def.Conditions[field] = cond
		}
	default:
		return Definition{}, fmt.Errorf("%s: line %d: conditions must be a mapping", def.Name, conds.Line)
	}

	return def, nil
}

func parseSortBy(node *yaml.Node) ([]string, error) {
	switch {
	case isAbsent(node):
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		return []string{node.Value}, nil
	case node.Kind == yaml.SequenceNode:
		var keys []string
		if err := node.Decode(&keys); err != nil {
			return nil, fmt.Errorf("sort_by: %w", err)
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("line %d: sort_by must be a string or a list of strings", node.Line)
	}
}

// parseCondition converts one condition value. It also returns keys of a
// condition object it did not recognize.
func parseCondition(node *yaml.Node) (Condition, []string, error) {
	switch {
	case isAbsent(node):
		return Unconstrained{}, nil, nil

	case node.Kind == yaml.ScalarNode:
		if node.Tag == "!!int" {
			var n int
			if err := node.Decode(&n); err != nil {
				return nil, nil, err
			}
			return ExactInt{Value: n}, nil, nil
		}
		return ExactString{Value: node.Value}, nil, nil

	case node.Kind == yaml.SequenceNode:
		values, err := decodeStrings(node)
		if err != nil {
			return nil, nil, err
		}
		return anyOf(values), nil, nil

	case node.Kind == yaml.MappingNode:
		return parseConditionObject(node)

	default:
		return nil, nil, fmt.Errorf("line %d: unsupported condition value", node.Line)
	}
}

func parseConditionObject(node *yaml.Node) (Condition, []string, error) {
	var (
		bounds   Range
		hasRange bool
		values   *AnyOf
		unknown  []string
	)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := resolve(node.Content[i+1])

		switch key {
		case "min", "max":
			if isAbsent(value) {
				continue
			}
			var n int
			if err := value.Decode(&n); err != nil {
				return nil, nil, fmt.Errorf("line %d: %s must be an integer", value.Line, key)
			}
			if key == "min" {
				bounds.Min = &n
			} else {
				bounds.Max = &n
			}
			hasRange = true
		case "any":
			list, err := decodeStrings(value)
			if err != nil {
				return nil, nil, err
			}
			values = &AnyOf{Values: list}
		default:
			unknown = append(unknown, key)
		}
	}

	var conds []Condition
	if hasRange {
		conds = append(conds, bounds)
	}
	if values != nil && len(values.Values) > 0 {
		conds = append(conds, *values)
	}

	switch len(conds) {
	case 0:
		return Unconstrained{}, unknown, nil
	case 1:
		return conds[0], unknown, nil
	default:
		return All{Conditions: conds}, unknown, nil
	}
}

// anyOf builds an AnyOf condition; an empty set constrains nothing.
func anyOf(values []string) Condition {
	if len(values) == 0 {
		return Unconstrained{}
	}
	return AnyOf{Values: values}
}

// decodeStrings accepts a sequence of scalars or a single scalar.
func decodeStrings(node *yaml.Node) ([]string, error) {
	switch {
	case isAbsent(node):
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		return []string{node.Value}, nil
	}

	var values []string
	if err := node.Decode(&values); err != nil {
		return nil, fmt.Errorf("line %d: expected a list of strings: %w", node.Line, err)
	}
	return values, nil
}

// resolve follows aliases.
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// isAbsent reports a missing key or an explicit null.
func isAbsent(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
