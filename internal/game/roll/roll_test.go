package roll

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bestiary/internal/constants"
)

// fixedRoller returns the queued values (1-based die faces) in order, then repeats the last.
type fixedRoller struct {
	values []int
	sizes  []int
	err    error
}

func (r *fixedRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	if r.err != nil {
		return 0, r.err
	}
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
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

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(nil, 1)
	assert.Error(t, err)

	_, err = NewService(&fixedRoller{values: []int{1}}, 0)
	assert.Error(t, err)

	s, err := NewService(&fixedRoller{values: []int{1}}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Divisor())
}

func TestService_Roll(t *testing.T) {
	tests := []struct {
		name    string
		face    int
		divisor int
		want    uint32
	}{
		{name: "lowest face", face: 1, divisor: 1, want: 0},
		{name: "highest face", face: constants.MaxLootChance, divisor: 1, want: constants.MaxLootChance - 1},
		{name: "divided", face: 50001, divisor: 2, want: 25000},
		{name: "integer division truncates", face: 10, divisor: 4, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := &fixedRoller{values: []int{tt.face}}
			s, err := NewService(roller, tt.divisor)
			require.NoError(t, err)

			assert.Equal(t, tt.want, s.Roll())
			assert.Equal(t, []int{constants.MaxLootChance}, roller.sizes)
		})
	}
}

func TestService_RollerError(t *testing.T) {
	s, err := NewService(&fixedRoller{err: errors.New("boom")}, 1)
	require.NoError(t, err)

	assert.Equal(t, uint32(constants.MaxLootChance), s.Roll())

	s, err = NewService(&fixedRoller{err: errors.New("boom")}, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(constants.MaxLootChance), s.Roll())
}

func TestSeededRoller_Deterministic(t *testing.T) {
	a := NewSeededRoller(42)
	b := NewSeededRoller(42)

	for range 100 {
		va, err := a.Roll(6)
		require.NoError(t, err)
		vb, err := b.Roll(6)
		require.NoError(t, err)
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 1)
		assert.LessOrEqual(t, va, 6)
	}

	_, err := a.Roll(0)
	assert.Error(t, err)

	rolls, err := a.RollN(3, 20)
	require.NoError(t, err)
	assert.Len(t, rolls, 3)
}

func TestSeededRoller_CoversRange(t *testing.T) {
	s, err := NewService(NewSeededRoller(7), 1)
	require.NoError(t, err)

	var lo, hi int
	for range 10000 {
		v := s.Roll()
		require.Less(t, v, uint32(constants.MaxLootChance))
		if v < constants.MaxLootChance/2 {
			lo++
		} else {
			hi++
		}
	}
	assert.InDelta(t, 5000, lo, 300)
	assert.InDelta(t, 5000, hi, 300)
}
