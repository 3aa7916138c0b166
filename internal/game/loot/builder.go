// Package loot builds reward trees from loot records and rolls them into
// concrete items on creature death.
package loot

import (
	"log/slog"
	"strings"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

// ItemTypes answers item-type questions for reward building and generation.
// Implemented by *data.ItemCatalog.
type ItemTypes interface {
	IsContainer(itemID int32) bool
	IsStackable(itemID int32) bool
	ContainerCapacity(itemID int32) int
}

// Builder translates loot records into reward trees.
type Builder struct {
	items ItemTypes
}

// NewBuilder creates a builder backed by the item catalog.
func NewBuilder(items ItemTypes) *Builder {
	return &Builder{items: items}
}

// BuildNode translates one <item> record. ok is false when the record has no
// (or a zero) item id.
func (b *Builder) BuildNode(rec *record.Node) (model.RewardNode, bool) {
	id, _ := rec.Int("id")
	if id == 0 {
		return model.RewardNode{}, false
	}

	node := model.RewardNode{
		ItemID:   int32(id),
		Chance:   constants.MaxLootChance,
		CountMax: 1,
	}

	if v, ok := rec.Int("countmax"); ok {
		node.CountMax = int32(min(max(v, 1), constants.MaxLootCount))
	}

	if v, ok := rec.FirstInt("chance", "chance1"); ok {
		node.Chance = uint32(min(max(v, 0), constants.MaxLootChance))
	}

	if b.items.IsContainer(node.ItemID) {
		node.Children = b.BuildChildren(rec)
	}

	if v, ok := rec.Int("subtype"); ok {
		subType := int32(v)
		node.SubType = &subType
	}
	if v, ok := rec.Int("actionId"); ok {
		actionID := int32(v)
		node.ActionID = &actionID
	}
	if v, ok := rec.Attr("text"); ok {
		node.Text = v
	}
	if v, ok := rec.Attr("dropEmpty"); ok {
		node.DropEmpty = strings.EqualFold(v, "true")
	}

	return node, true
}

// BuildChildren builds the reward list of a container record from its
// contents block. No block means an empty container reward.
func (b *Builder) BuildChildren(rec *record.Node) []model.RewardNode {
	block := rec.Child("contents")
	if block == nil {
		block = rec.Child("inside")
	}
	if block == nil {
		return nil
	}
	return b.BuildList(block)
}

// BuildList builds every child of a <loot> (or contents) block, dropping
// invalid entries.
func (b *Builder) BuildList(block *record.Node) []model.RewardNode {
	var out []model.RewardNode
	for _, child := range block.Children {
		node, ok := b.BuildNode(child)
		if !ok {
			slog.Warn("loot entry without item id skipped", "entry", child.Name)
			continue
		}
		out = append(out, node)
	}
	return out
}
