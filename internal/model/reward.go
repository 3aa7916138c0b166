package model

// RewardNode — элемент дерева лута.
// Узел с container item может владеть Children; non-container узел — никогда.
type RewardNode struct {
	ItemID   int32  // never 0
	Chance   uint32 // 0..MaxLootChance
	CountMax int32  // 1..MaxLootCount

	SubType  *int32
	ActionID *int32
	Text     string

	DropEmpty bool
	Children  []RewardNode
}

// TotalNodes returns the number of nodes in the subtree rooted at n (n included).
func (n *RewardNode) TotalNodes() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].TotalNodes()
	}
	return total
}
