package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/creature"
	"github.com/udisondev/bestiary/internal/data"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/game/roll"
	"github.com/udisondev/bestiary/internal/model"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestSimulate(t *testing.T) {
	catalog := data.NewItemCatalog([]data.ItemDef{
		{ID: 2148, Name: "gold coin", Stackable: true},
		{ID: 1987, Name: "bag", Container: 8},
		{ID: 2376, Name: "sword"},
	})

	rolls, err := roll.NewService(roll.NewSeededRoller(7), 1)
	require.NoError(t, err)
	gen := loot.NewGenerator(catalog, rolls, nil)

	tmpl := &model.CreatureTemplate{
		Name:       "Rat",
		LookCorpse: 5964, // not in catalog
		Loot: []model.RewardNode{
			{ItemID: 2148, Chance: constants.MaxLootChance, CountMax: 1},
			{ItemID: 1987, Chance: constants.MaxLootChance, CountMax: 1, Children: []model.RewardNode{
				{ItemID: 2376, Chance: constants.MaxLootChance, CountMax: 1},
			}},
		},
	}

	stats, err := simulate(gen, catalog, tmpl, 50)
	require.NoError(t, err)

	require.Len(t, stats, 3)
	assert.Equal(t, 50, stats[2148].drops)
	assert.Equal(t, int64(50), stats[2148].count)
	assert.Equal(t, 50, stats[1987].drops)
	assert.Equal(t, 50, stats[2376].drops)

	var out bytes.Buffer
	stats.print(&out, 50)
	assert.Contains(t, out.String(), "ITEM")
	assert.Contains(t, out.String(), "100.00%")
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, creature.LoadReport{
		Loaded:        3,
		AbilityErrors: 1,
		Skipped:       []creature.SkippedRecord{{Name: "Ghost", Err: errors.New("file not found")}},
	}, 12)

	s := out.String()
	assert.Contains(t, s, "shared abilities: 12")
	assert.Contains(t, s, "creatures loaded: 3")
	assert.Contains(t, s, "abilities dropped: 1")
	assert.Contains(t, s, "Ghost")
	assert.Contains(t, s, "file not found")
}
