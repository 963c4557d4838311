/*
Package template loads standard-base template coordinate files (spec.md §6:
"Atomic_X.pdb" for standard bases, "Atomic.x.pdb" lowercase variants for
modified nucleotides) and caches them in memory, keyed by file path. Cached
templates are read-only after load; Cache.Load takes the cache's mutex on
every call, including cache hits.

The file format is a minimal fixed-column PDB ATOM record subset — just the
atom name and x/y/z coordinate columns — since a template file's only job is
to supply standard ring-atom geometry to fit against.
*/
package template

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/TimothyStiles/basepair/geometry"
)

// Template is a standard-base coordinate template: a name-to-coordinate map
// for whatever atoms the file defines.
type Template struct {
	Name  string
	Atoms map[string]geometry.Vector3
}

// Coord returns the coordinate for a named atom and whether it was present
// in the template.
func (t *Template) Coord(name string) (geometry.Vector3, bool) {
	v, ok := t.Atoms[name]
	return v, ok
}

// Cache is an in-memory, read-after-load template cache keyed by file path.
// The zero value is ready to use.
type Cache struct {
	mu     sync.Mutex
	loaded map[string]*Template
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{loaded: make(map[string]*Template)}
}

// Load returns the Template for path, parsing and caching it on first
// request. Concurrent callers loading the same path block on each other
// rather than parsing the file twice (the "one-shot idempotent load"
// spec.md §5 requires of the template cache).
func (c *Cache) Load(path string) (*Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded == nil {
		c.loaded = make(map[string]*Template)
	}
	if t, ok := c.loaded[path]; ok {
		return t, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template: open %q: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("template: parse %q: %w", path, err)
	}
	t.Name = path
	c.loaded[path] = t
	return t, nil
}

// Parse reads a template coordinate file from r. Lines are standard PDB
// ATOM/HETATM records; only the atom-name (columns 13-16) and x/y/z
// (columns 31-54) fields are used.
func Parse(r io.Reader) (*Template, error) {
	t := &Template{Atoms: make(map[string]geometry.Vector3)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) < 6 {
			continue
		}
		record := strings.TrimSpace(text[:6])
		if record != "ATOM" && record != "HETATM" {
			continue
		}
		if len(text) < 54 {
			return nil, fmt.Errorf("template: line %d: record too short for coordinate columns", line)
		}

		name := strings.TrimSpace(text[12:16])
		x, err := strconv.ParseFloat(strings.TrimSpace(text[30:38]), 64)
		if err != nil {
			return nil, fmt.Errorf("template: line %d: invalid x coordinate: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(text[38:46]), 64)
		if err != nil {
			return nil, fmt.Errorf("template: line %d: invalid y coordinate: %w", line, err)
		}
		z, err := strconv.ParseFloat(strings.TrimSpace(text[46:54]), 64)
		if err != nil {
			return nil, fmt.Errorf("template: line %d: invalid z coordinate: %w", line, err)
		}

		t.Atoms[name] = geometry.Vector3{X: x, Y: y, Z: z}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(t.Atoms) == 0 {
		return nil, fmt.Errorf("template: no ATOM/HETATM records found")
	}
	return t, nil
}
