// Package roll is the loot roll service: uniform draws over [0, MaxLootChance)
// scaled down by the global loot-rate divisor.
package roll

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/udisondev/bestiary/internal/constants"
)

// Service draws loot rolls.
//
// Roll() = uniform[0, MaxLootChance) / divisor (integer division), so a
// chance of MaxLootChance always passes.
// Larger divisor → smaller rolls → `roll < chance` succeeds more often.
type Service struct {
	roller  dice.Roller
	divisor uint32
}

// NewService creates a roll service. divisor must be ≥ 1.
func NewService(roller dice.Roller, divisor int) (*Service, error) {
	if roller == nil {
		return nil, fmt.Errorf("roller cannot be nil")
	}
	if divisor < 1 {
		return nil, fmt.Errorf("loot rate divisor must be >= 1, got %d", divisor)
	}
	return &Service{roller: roller, divisor: uint32(divisor)}, nil
}

// Divisor returns the loot-rate divisor.
func (s *Service) Divisor() int {
	return int(s.divisor)
}

// Uniform returns a uniform draw in [0, MaxLootChance).
// A failing roller yields MaxLootChance, which never passes a chance test.
func (s *Service) Uniform() uint32 {
	v, err := s.roller.Roll(constants.MaxLootChance)
	if err != nil {
		slog.Error("loot roll failed", "err", err)
		return constants.MaxLootChance
	}
	return uint32(v - 1)
}

// Roll returns Uniform() / divisor.
// A failed draw stays at MaxLootChance regardless of the divisor.
func (s *Service) Roll() uint32 {
	u := s.Uniform()
	if u >= constants.MaxLootChance {
		return constants.MaxLootChance
	}
	return u / s.divisor
}

// SeededRoller is a deterministic dice.Roller backed by PCG.
// Not safe for concurrent use.
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller returns a roller that replays the same sequence for the same seed.
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Roll returns a value in [1, size].
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size: %d", size)
	}
	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size.
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid dice count: %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ dice.Roller = (*SeededRoller)(nil)
