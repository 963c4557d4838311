/*
Package nucleotide implements the modified-nucleotide registry described in
spec.md §4.2: a process-wide, read-only-after-load mapping from 3-letter (or
similar) residue code to canonical base type, purine/pyrimidine-ness, and
template file. New modified bases are added by editing the registry's JSON
file, never by editing this package's code.

The loader follows the same package-level-function-variable seam
io/polyjson and io/rebase use (readFileFn/unmarshalFn) so tests can swap the
I/O without a mocking framework.
*/
package nucleotide

import (
	"encoding/json"
	"fmt"
	"os"
)

// Type is the canonical base type a registry entry maps a residue code to.
type Type string

const (
	TypeAdenine       Type = "ADENINE"
	TypeGuanine       Type = "GUANINE"
	TypeCytosine      Type = "CYTOSINE"
	TypeThymine       Type = "THYMINE"
	TypeUracil        Type = "URACIL"
	TypeInosine       Type = "INOSINE"
	TypePseudouridine Type = "PSEUDOURIDINE"
)

// IsPurine reports whether t is one of the two purine base types.
func (t Type) IsPurine() bool {
	return t == TypeAdenine || t == TypeGuanine || t == TypeInosine
}

// Entry is one registry record: a residue code's canonical base type, the
// template file to fit against, and an audit description.
type Entry struct {
	Code        string `json:"code"`
	Type        Type   `json:"type"`
	Template    string `json:"template"`
	Description string `json:"description"`
}

// Registry is the process-wide, read-only-after-load modified-nucleotide
// table. The zero value is an empty, usable registry.
type Registry struct {
	entries map[string]Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Lookup returns the entry for residueCode and whether it exists. A miss
// means detection should fall back to RMSD-based type detection
// (spec.md §4.2).
func (r *Registry) Lookup(residueCode string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[residueCode]
	return e, ok
}

// Len returns the number of entries in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// rawDocument mirrors the JSON schema in spec.md §6: a set of named
// categories, each mapping a residue code to its entry. The category name
// itself carries no semantics beyond grouping for human readability; only
// the per-entry "type" field is authoritative.
type rawDocument map[string]map[string]Entry

var (
	readFileFn  = os.ReadFile
	unmarshalFn = json.Unmarshal
)

// RegistryError wraps a failure to load or parse the registry file
// (spec.md §7 InputError).
type RegistryError struct {
	Path string
	Err  error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("nucleotide: registry %q: %v", e.Path, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// Load reads and parses the modified-nucleotide registry JSON file at path,
// flattening its categories into a single code-keyed table.
func Load(path string) (*Registry, error) {
	data, err := readFileFn(path)
	if err != nil {
		return nil, &RegistryError{Path: path, Err: err}
	}

	var doc rawDocument
	if err := unmarshalFn(data, &doc); err != nil {
		return nil, &RegistryError{Path: path, Err: err}
	}

	reg := New()
	for _, category := range doc {
		for code, entry := range category {
			reg.entries[code] = entry
		}
	}
	return reg, nil
}
