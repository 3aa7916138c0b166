package creature

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/udisondev/bestiary/internal/record"
)

const (
	indexRoot  = "monsters"
	indexEntry = "monster"
	monsterDir = "monster"
	indexFile  = "monsters.xml"
)

// Entry is one creature listed by a source.
type Entry struct {
	Name string // registry name (lower-cased for lookup)
	File string // source-specific record location
}

// Source lists creature records and opens them.
type Source interface {
	Entries() ([]Entry, error)
	Open(e Entry) (*record.Node, error)
}

// DirSource reads <dir>/monster/monsters.xml and the record files it lists.
type DirSource struct {
	dir string
}

// NewDirSource creates a source rooted at the data directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Entries reads the index. A wrong root element is a *DocumentError.
func (s *DirSource) Entries() ([]Entry, error) {
	path := filepath.Join(s.dir, monsterDir, indexFile)

	root, err := record.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading creature index: %w", err)
	}
	if root.Name != indexRoot {
		return nil, &DocumentError{Path: path, Root: root.Name, Want: indexRoot}
	}

	var entries []Entry
	for _, n := range root.Children {
		if n.Name != indexEntry {
			slog.Warn("unknown creature index node", "node", n.Name)
			continue
		}
		name, okName := n.Attr("name")
		file, okFile := n.Attr("file")
		if !okName || !okFile {
			slog.Warn("creature index entry without name or file", "name", name, "file", file)
			continue
		}
		entries = append(entries, Entry{Name: name, File: file})
	}
	return entries, nil
}

// Open reads the record file of e.
func (s *DirSource) Open(e Entry) (*record.Node, error) {
	if !filepath.IsLocal(e.File) {
		return nil, fmt.Errorf("creature %q: record path %q escapes the data directory", e.Name, e.File)
	}
	return record.ReadFile(filepath.Join(s.dir, monsterDir, e.File))
}

// StaticSource serves in-memory records, in insertion order.
type StaticSource struct {
	entries []Entry
	records map[string]*record.Node
}

// NewStaticSource creates an empty source.
func NewStaticSource() *StaticSource {
	return &StaticSource{records: make(map[string]*record.Node)}
}

// Add registers rec under name. A nil rec makes Open fail for that entry.
// Adding an existing name replaces its record.
func (s *StaticSource) Add(name string, rec *record.Node) *StaticSource {
	if _, ok := s.records[name]; !ok {
		s.entries = append(s.entries, Entry{Name: name, File: name})
	}
	s.records[name] = rec
	return s
}

// Entries returns the registered entries.
func (s *StaticSource) Entries() ([]Entry, error) {
	return append([]Entry(nil), s.entries...), nil
}

// Open returns the record registered for e.
func (s *StaticSource) Open(e Entry) (*record.Node, error) {
	rec := s.records[e.File]
	if rec == nil {
		return nil, fmt.Errorf("creature %q: no record", e.Name)
	}
	return rec, nil
}
