package model

import (
	"fmt"
	"sync"
)

// Item — конкретный экземпляр предмета, созданный генератором лута.
// Если capacity > 0, предмет является контейнером (bag, corpse) и может
// содержать другие предметы.
type Item struct {
	objectID uint32 // Unique ID в world
	itemID   int32  // Template ID (ссылка на item catalog)
	count    int32  // Stack count (1 для non-stackable)

	subType  int32
	actionID int32
	text     string

	capacity int
	contents []*Item
	decaying bool

	mu sync.RWMutex
}

// NewItem создаёт новый предмет с валидацией.
//
// Parameters:
//   - objectID: unique ID в world (from world.IDGenerator().NextItemID())
//   - itemID: template ID
//   - count: stack count (должен быть > 0)
//   - capacity: число слотов для контейнера, 0 для обычного предмета
func NewItem(objectID uint32, itemID int32, count int32, capacity int) (*Item, error) {
	if itemID == 0 {
		return nil, fmt.Errorf("itemID cannot be 0")
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be > 0, got %d", count)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative, got %d", capacity)
	}

	return &Item{
		objectID: objectID,
		itemID:   itemID,
		count:    count,
		subType:  -1,
		actionID: -1,
		capacity: capacity,
	}, nil
}

// ObjectID возвращает unique ID в world.
func (i *Item) ObjectID() uint32 {
	return i.objectID
}

// ItemID возвращает template ID.
func (i *Item) ItemID() int32 {
	return i.itemID
}

// Count возвращает stack count.
func (i *Item) Count() int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.count
}

// SubType возвращает subtype (-1 если не задан).
func (i *Item) SubType() int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.subType
}

// SetSubType устанавливает subtype (fluid type, charges).
func (i *Item) SetSubType(subType int32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.subType = subType
}

// ActionID возвращает action tag (-1 если не задан).
func (i *Item) ActionID() int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.actionID
}

// SetActionID устанавливает action tag.
func (i *Item) SetActionID(actionID int32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.actionID = actionID
}

// Text возвращает inscribed text.
func (i *Item) Text() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.text
}

// SetText устанавливает inscribed text.
func (i *Item) SetText(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.text = text
}

// IsContainer возвращает true если предмет может содержать другие предметы.
func (i *Item) IsContainer() bool {
	return i.capacity > 0
}

// Capacity возвращает число слотов контейнера.
func (i *Item) Capacity() int {
	return i.capacity
}

// Size возвращает число предметов непосредственно в контейнере.
func (i *Item) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.contents)
}

// AddItem кладёт предмет в контейнер.
//
// Returns:
//   - error: если предмет не контейнер, контейнер полон или item == nil
func (i *Item) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item == i {
		return fmt.Errorf("item objectID=%d cannot contain itself", i.objectID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.contents) >= i.capacity {
		return fmt.Errorf("container itemID=%d is full (capacity %d)", i.itemID, i.capacity)
	}
	i.contents = append(i.contents, item)
	return nil
}

// Contents возвращает копию списка предметов в контейнере.
func (i *Item) Contents() []*Item {
	i.mu.RLock()
	defer i.mu.RUnlock()

	items := make([]*Item, len(i.contents))
	copy(items, i.contents)
	return items
}

// StartDecay помечает предмет (обычно corpse) как начавший decay lifecycle.
func (i *Item) StartDecay() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.decaying = true
}

// IsDecaying возвращает true после StartDecay.
func (i *Item) IsDecaying() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.decaying
}
