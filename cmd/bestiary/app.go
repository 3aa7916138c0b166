package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/udisondev/bestiary/internal/config"
	"github.com/udisondev/bestiary/internal/creature"
	"github.com/udisondev/bestiary/internal/data"
	"github.com/udisondev/bestiary/internal/game/ability"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/game/roll"
)

const (
	itemsFile  = "items.yaml"
	spellsFile = "spells.xml"
)

// app wires the data tables, compilers and registry for one config.
type app struct {
	cfg      config.Server
	catalog  *data.ItemCatalog
	shared   *ability.SharedTable
	registry *creature.Registry
	source   creature.Source
}

// newApp loads item catalog and shared abilities and builds an empty registry.
func newApp(cfg config.Server) (*app, error) {
	catalog, err := data.LoadItemCatalog(filepath.Join(cfg.DataDir, itemsFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading item catalog: %w", err)
		}
		slog.Warn("item catalog not found, containers and stacks are unknown", "dir", cfg.DataDir)
		catalog = data.NewItemCatalog(nil)
	}

	scripts := ability.NewLuaScriptHost(cfg.ScriptsDir)

	// Shared abilities are compiled first, without a shared table of their own.
	sharedCompiler := ability.NewCompiler(
		ability.WithScriptHost(scripts),
		ability.WithMaxViewportX(cfg.MaxViewportX),
	)
	shared, err := ability.LoadSharedTable(filepath.Join(cfg.DataDir, spellsFile), sharedCompiler)
	if err != nil {
		return nil, fmt.Errorf("loading shared abilities: %w", err)
	}

	compiler := ability.NewCompiler(
		ability.WithSharedTable(shared),
		ability.WithScriptHost(scripts),
		ability.WithMaxViewportX(cfg.MaxViewportX),
	)

	return &app{
		cfg:      cfg,
		catalog:  catalog,
		shared:   shared,
		registry: creature.NewRegistry(compiler, loot.NewBuilder(catalog)),
		source:   creature.NewDirSource(cfg.DataDir),
	}, nil
}

// load runs the initial registry load.
func (a *app) load() (creature.LoadReport, error) {
	report, err := a.registry.Load(a.source)
	if err != nil {
		return report, fmt.Errorf("loading creatures: %w", err)
	}
	return report, nil
}

// generator builds a loot generator over roller with the configured loot rate.
func (a *app) generator(roller dice.Roller) (*loot.Generator, error) {
	rolls, err := roll.NewService(roller, a.cfg.Rates.Loot)
	if err != nil {
		return nil, err
	}
	return loot.NewGenerator(a.catalog, rolls, nil), nil
}
