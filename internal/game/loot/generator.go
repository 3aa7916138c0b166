package loot

import (
	"log/slog"

	"github.com/udisondev/bestiary/internal/game/roll"
	"github.com/udisondev/bestiary/internal/metrics"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/world"
)

// Corpse is the container loot is generated into.
// Implemented by *model.Item.
type Corpse interface {
	Capacity() int
	Size() int
	AddItem(item *model.Item) error
	StartDecay()
}

// Generator rolls reward trees into concrete items.
type Generator struct {
	items ItemTypes
	roll  *roll.Service
	ids   *world.ObjectIDGenerator
}

// NewGenerator creates a generator. ids may be nil to use the global generator.
func NewGenerator(items ItemTypes, rolls *roll.Service, ids *world.ObjectIDGenerator) *Generator {
	if ids == nil {
		ids = world.IDGenerator()
	}
	return &Generator{items: items, roll: rolls, ids: ids}
}

// Generate walks rewards in order and inserts produced items into corpse
// while it has free slots, then starts the corpse decay exactly once.
// Returns the number of item instances created (nested ones included).
func (g *Generator) Generate(rewards []model.RewardNode, corpse Corpse) int {
	created := 0

	for i := range rewards {
		if corpse.Capacity()-corpse.Size() <= 0 {
			break
		}
		created += g.place(&rewards[i], corpse)
	}

	corpse.StartDecay()

	metrics.LootGenerations.Inc()
	metrics.LootItemsGenerated.Add(float64(created))
	return created
}

// place rolls node and, if it drops, inserts the result into parent.
// Returns the number of instances inserted.
func (g *Generator) place(node *model.RewardNode, parent Corpse) int {
	item := g.createItem(node)
	if item == nil {
		return 0
	}

	created := 1
	if item.IsContainer() {
		created += g.fillContainer(item, node)
		if item.Size() == 0 && !node.DropEmpty {
			metrics.LootContainersDiscarded.Inc()
			return 0
		}
	}

	if err := parent.AddItem(item); err != nil {
		slog.Warn("cannot insert loot item", "itemID", node.ItemID, "err", err)
		return 0
	}
	return created
}

func (g *Generator) fillContainer(container *model.Item, node *model.RewardNode) int {
	created := 0
	for i := range node.Children {
		if container.Size() >= container.Capacity() {
			break
		}
		created += g.place(&node.Children[i], container)
	}
	return created
}

// createItem rolls a single node. Stackable items draw one roll that also
// sizes the stack; non-stackable items draw their own roll.
func (g *Generator) createItem(node *model.RewardNode) *model.Item {
	var count int32
	if g.items.IsStackable(node.ItemID) {
		r := g.roll.Roll()
		if r >= node.Chance {
			return nil
		}
		count = int32(r%uint32(max(node.CountMax, 1))) + 1
	} else {
		if g.roll.Roll() >= node.Chance {
			return nil
		}
		count = 1
	}

	capacity := 0
	if g.items.IsContainer(node.ItemID) {
		capacity = g.items.ContainerCapacity(node.ItemID)
	}

	item, err := model.NewItem(g.ids.NextItemID(), node.ItemID, count, capacity)
	if err != nil {
		slog.Warn("cannot create loot item", "itemID", node.ItemID, "err", err)
		return nil
	}

	if node.SubType != nil {
		item.SetSubType(*node.SubType)
	}
	if node.ActionID != nil {
		item.SetActionID(*node.ActionID)
	}
	if node.Text != "" {
		item.SetText(node.Text)
	}
	return item
}
