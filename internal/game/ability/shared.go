package ability

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"sync"

	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

const sharedContext = "spells"

// SharedTable holds named pre-compiled abilities referenced by exact name.
type SharedTable struct {
	mu      sync.RWMutex
	entries map[string]*model.SharedAbility
}

// NewSharedTable creates an empty table.
func NewSharedTable() *SharedTable {
	return &SharedTable{entries: make(map[string]*model.SharedAbility)}
}

// Register adds (or replaces) a shared ability.
func (t *SharedTable) Register(name string, ab *model.CompiledAbility) *model.SharedAbility {
	shared := &model.SharedAbility{Name: name, Ability: ab}

	t.mu.Lock()
	t.entries[name] = shared
	t.mu.Unlock()

	return shared
}

// Lookup returns the shared ability with exactly this name.
func (t *SharedTable) Lookup(name string) (*model.SharedAbility, bool) {
	if t == nil {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	shared, ok := t.entries[name]
	return shared, ok
}

// Len returns the number of shared abilities.
func (t *SharedTable) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// CompileShared compiles <spell name= base=> records into the table.
// base selects the synthesis rule (name is used when base is absent).
// Shared entries never resolve to other shared entries.
func (c *Compiler) CompileShared(root *record.Node, table *SharedTable) error {
	if root.Name != "spells" {
		return fmt.Errorf("shared abilities: unexpected root %q", root.Name)
	}

	for _, rec := range root.ChildrenNamed("spell") {
		name, ok := rec.Attr("name")
		if !ok {
			slog.Warn("shared ability without name skipped")
			continue
		}

		src := &record.Node{Name: rec.Name, Attrs: maps.Clone(rec.Attrs), Children: rec.Children}
		if base, ok := rec.Attr("base"); ok {
			src.Set("name", base)
		}

		ab, err := c.compile(src, sharedContext, false)
		if err != nil {
			slog.Warn("cannot load shared ability", "name", name, "err", err)
			continue
		}
		table.Register(name, ab)
	}

	slog.Info("loaded shared abilities", "count", table.Len())
	return nil
}

// LoadSharedTable reads a spells file and compiles it with c.
// A missing file yields an empty table.
func LoadSharedTable(path string, c *Compiler) (*SharedTable, error) {
	table := NewSharedTable()

	root, err := record.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("shared abilities file not found", "path", path)
			return table, nil
		}
		return nil, fmt.Errorf("reading shared abilities: %w", err)
	}

	if err := c.CompileShared(root, table); err != nil {
		return nil, err
	}
	return table, nil
}
