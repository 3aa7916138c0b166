package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/data"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/game/roll"
	"github.com/udisondev/bestiary/internal/model"
)

var (
	lootRuns int
	lootSeed uint64
)

var lootCmd = &cobra.Command{
	Use:   "loot <creature>",
	Short: "Simulate loot drops of a creature",
	Long: `Generates loot for the named creature --runs times and prints how
often each item dropped and its average count. With --seed the rolls are
reproducible.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoot,
}

func init() {
	lootCmd.Flags().IntVar(&lootRuns, "runs", 1000, "number of corpses to generate")
	lootCmd.Flags().Uint64Var(&lootSeed, "seed", 0, "seed for reproducible rolls (0 uses the default roller)")
}

func runLoot(cmd *cobra.Command, args []string) error {
	if lootRuns <= 0 {
		return fmt.Errorf("runs must be > 0, got %d", lootRuns)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	if _, err := a.load(); err != nil {
		return err
	}

	h, ok := a.registry.LookupName(args[0])
	if !ok {
		return fmt.Errorf("creature %q not found", args[0])
	}

	var roller dice.Roller = dice.DefaultRoller
	if lootSeed != 0 {
		roller = roll.NewSeededRoller(lootSeed)
	}
	gen, err := a.generator(roller)
	if err != nil {
		return err
	}

	tmpl := h.Template()
	stats, err := simulate(gen, a.catalog, tmpl, lootRuns)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d runs, loot rate x%d\n", tmpl.Name, lootRuns, cfg.Rates.Loot)
	stats.print(cmd.OutOrStdout(), lootRuns)
	return nil
}

// dropStat aggregates one item id over all runs.
type dropStat struct {
	itemID int32
	drops  int
	count  int64
}

type lootStats map[int32]*dropStat

// simulate generates runs corpses of tmpl and counts every produced item,
// nested container contents included.
func simulate(gen *loot.Generator, catalog *data.ItemCatalog, tmpl *model.CreatureTemplate, runs int) (lootStats, error) {
	corpseID := int32(tmpl.LookCorpse)
	capacity := catalog.ContainerCapacity(corpseID)
	if corpseID == 0 || capacity <= 0 {
		corpseID = constants.DefaultCorpseItem
		capacity = constants.DefaultCorpseCapacity
	}

	stats := make(lootStats)
	for range runs {
		corpse, err := model.NewItem(0, corpseID, 1, capacity)
		if err != nil {
			return nil, fmt.Errorf("creating corpse: %w", err)
		}
		gen.Generate(tmpl.Loot, corpse)
		stats.collect(corpse.Contents())
	}
	return stats, nil
}

func (s lootStats) collect(items []*model.Item) {
	for _, it := range items {
		st, ok := s[it.ItemID()]
		if !ok {
			st = &dropStat{itemID: it.ItemID()}
			s[it.ItemID()] = st
		}
		st.drops++
		st.count += int64(it.Count())

		if it.IsContainer() {
			s.collect(it.Contents())
		}
	}
}

func (s lootStats) print(w io.Writer, runs int) {
	rows := make([]*dropStat, 0, len(s))
	for _, st := range s {
		rows = append(rows, st)
	}
	slices.SortFunc(rows, func(a, b *dropStat) int {
		if c := cmp.Compare(b.drops, a.drops); c != 0 {
			return c
		}
		return cmp.Compare(a.itemID, b.itemID)
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tDROPS\tRATE\tAVG COUNT")
	for _, st := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%.2f%%\t%.2f\n",
			st.itemID,
			st.drops,
			100*float64(st.drops)/float64(runs),
			float64(st.count)/float64(st.drops))
	}
	tw.Flush()
}
