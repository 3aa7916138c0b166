package world

import (
	"sync/atomic"

	"github.com/udisondev/bestiary/internal/constants"
)

// ObjectIDGenerator generates unique object IDs for item instances produced by loot.
//
// ID range (convention):
//
//	0x00000000:              invalid
//	0x30000000 - 0x3FFFFFFF: generated items
type ObjectIDGenerator struct {
	nextItemID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextItemID.Store(constants.ObjectIDItemStart)
	return gen
}

// NextItemID generates next unique item object ID.
// Thread-safe via atomic increment. Wraps back to the start of the range
// once the range is exhausted.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	for {
		cur := g.nextItemID.Load()
		next := cur + 1
		if next > constants.ObjectIDItemEnd {
			next = constants.ObjectIDItemStart + 1
		}
		if g.nextItemID.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// Global ID generator.
var globalIDGenerator = NewObjectIDGenerator()

// IDGenerator returns global object ID generator.
func IDGenerator() *ObjectIDGenerator {
	return globalIDGenerator
}
