package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemDef — тип предмета из item catalog (items.yaml).
// Только то, что нужно компилятору и генератору лута.
type ItemDef struct {
	ID        int32  `yaml:"id"`
	Name      string `yaml:"name"`
	Stackable bool   `yaml:"stackable"`
	Container int    `yaml:"container"` // capacity, 0 for non-containers
}

type itemCatalogFile struct {
	Items []ItemDef `yaml:"items"`
}

// ItemCatalog — registry типов предметов.
// map[itemID]*ItemDef
type ItemCatalog struct {
	items map[int32]*ItemDef
}

// NewItemCatalog строит catalog из списка определений.
// Duplicate ids: последнее определение побеждает.
func NewItemCatalog(defs []ItemDef) *ItemCatalog {
	c := &ItemCatalog{items: make(map[int32]*ItemDef, len(defs))}
	for i := range defs {
		def := defs[i]
		c.items[def.ID] = &def
	}
	return c
}

// LoadItemCatalog загружает catalog из YAML файла.
func LoadItemCatalog(path string) (*ItemCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item catalog %s: %w", path, err)
	}

	var file itemCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing item catalog %s: %w", path, err)
	}

	for _, def := range file.Items {
		if def.ID == 0 {
			return nil, fmt.Errorf("parsing item catalog %s: item %q has id 0", path, def.Name)
		}
		if def.Container < 0 {
			return nil, fmt.Errorf("parsing item catalog %s: item %d has negative capacity", path, def.ID)
		}
	}

	c := NewItemCatalog(file.Items)
	slog.Info("loaded item catalog", "count", c.Len())
	return c, nil
}

// Get возвращает ItemDef по item ID (nil если не найден).
func (c *ItemCatalog) Get(itemID int32) *ItemDef {
	if c == nil {
		return nil
	}
	return c.items[itemID]
}

// Len returns the number of item types.
func (c *ItemCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// IsContainer reports whether itemID denotes a container type.
func (c *ItemCatalog) IsContainer(itemID int32) bool {
	def := c.Get(itemID)
	return def != nil && def.Container > 0
}

// IsStackable reports whether itemID denotes a stackable type.
func (c *ItemCatalog) IsStackable(itemID int32) bool {
	def := c.Get(itemID)
	return def != nil && def.Stackable
}

// ContainerCapacity returns the slot count of a container type (0 otherwise).
func (c *ItemCatalog) ContainerCapacity(itemID int32) int {
	def := c.Get(itemID)
	if def == nil {
		return 0
	}
	return def.Container
}
