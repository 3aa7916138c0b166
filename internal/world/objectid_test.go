package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/bestiary/internal/constants"
)

func TestObjectIDGenerator_NextItemID(t *testing.T) {
	gen := NewObjectIDGenerator()

	first := gen.NextItemID()
	second := gen.NextItemID()

	assert.Equal(t, constants.ObjectIDItemStart+1, first)
	assert.Equal(t, first+1, second)
	assert.True(t, constants.IsItemObjectID(first))
}

func TestObjectIDGenerator_Wraps(t *testing.T) {
	gen := NewObjectIDGenerator()
	gen.nextItemID.Store(constants.ObjectIDItemEnd)

	id := gen.NextItemID()
	assert.Equal(t, constants.ObjectIDItemStart+1, id)
}

func TestObjectIDGenerator_Concurrent(t *testing.T) {
	gen := NewObjectIDGenerator()

	const workers, perWorker = 8, 500
	ids := make(chan uint32, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- gen.NextItemID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint32]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}
