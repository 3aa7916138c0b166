// Package creature owns the compiled creature templates: it builds them from
// records and publishes them behind stable handles.
package creature

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/bestiary/internal/game/ability"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/metrics"
	"github.com/udisondev/bestiary/internal/model"
)

// entry is the registry slot of one creature name. id and key never change;
// the template pointer is swapped on reload.
type entry struct {
	id     uint32
	key    string
	source Entry
	tmpl   atomic.Pointer[model.CreatureTemplate]
}

// Handle is a stable reference to a registry slot. It stays valid across
// reloads and always yields the currently published template.
type Handle struct {
	e *entry
}

// Valid reports whether h refers to a registry slot.
func (h Handle) Valid() bool {
	return h.e != nil
}

// ID returns the template id.
func (h Handle) ID() uint32 {
	if h.e == nil {
		return 0
	}
	return h.e.id
}

// Template returns the currently published template. The value is read-only.
func (h Handle) Template() *model.CreatureTemplate {
	if h.e == nil {
		return nil
	}
	return h.e.tmpl.Load()
}

// SkippedRecord is a record left out of a load pass.
type SkippedRecord struct {
	Name string
	Err  error
}

// LoadReport summarizes a load pass.
type LoadReport struct {
	Loaded        int // templates published (new and replaced)
	Added         int // names registered for the first time
	Skipped       []SkippedRecord
	AbilityErrors int // abilities dropped while compiling published templates
}

// Registry holds creature templates by id and by case-insensitive name.
type Registry struct {
	loader *Loader

	// batchMu serializes load passes and single reloads.
	batchMu sync.Mutex

	mu     sync.RWMutex
	byID   map[uint32]*entry
	byName map[string]*entry
	nextID uint32
	staged map[string]*model.CreatureTemplate // current batch, by key
	source Source
}

// NewRegistry creates an empty registry. The compiler's outfit lookup is
// pointed at the registry so outfit abilities can reference other creatures.
func NewRegistry(compiler *ability.Compiler, rewards *loot.Builder) *Registry {
	r := &Registry{
		loader: NewLoader(compiler, rewards),
		byID:   make(map[uint32]*entry),
		byName: make(map[string]*entry),
	}
	compiler.SetOutfitLookup(r)
	return r
}

// Load runs the initial load pass.
func (r *Registry) Load(src Source) (LoadReport, error) {
	return r.loadBatch(src)
}

// Reload re-runs the load pass. Known names keep their ids; records that
// fail validation leave their published template untouched.
func (r *Registry) Reload(src Source) (LoadReport, error) {
	return r.loadBatch(src)
}

type built struct {
	source Entry
	key    string
	tmpl   *model.CreatureTemplate
}

func (r *Registry) loadBatch(src Source) (LoadReport, error) {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	var report LoadReport

	entries, err := src.Entries()
	if err != nil {
		return report, err
	}

	r.setStaged(make(map[string]*model.CreatureTemplate, len(entries)))
	defer r.setStaged(nil)

	batch := make([]built, 0, len(entries))
	for _, e := range entries {
		rec, err := src.Open(e)
		if err != nil {
			slog.Warn("cannot read creature record", "creature", e.Name, "err", err)
			report.Skipped = append(report.Skipped, SkippedRecord{Name: e.Name, Err: err})
			metrics.TemplateLoads.WithLabelValues(metrics.ResultSkipped).Inc()
			continue
		}

		tmpl, abilityErrs, err := r.loader.Build(rec, e.File)
		if err != nil {
			var docErr *DocumentError
			if errors.As(err, &docErr) {
				return LoadReport{}, fmt.Errorf("loading creature %q: %w", e.Name, err)
			}
			slog.Warn("creature record skipped", "creature", e.Name, "err", err)
			report.Skipped = append(report.Skipped, SkippedRecord{Name: e.Name, Err: err})
			metrics.TemplateLoads.WithLabelValues(metrics.ResultSkipped).Inc()
			continue
		}

		key := model.LookupKey(e.Name)
		r.stage(key, tmpl)
		batch = append(batch, built{source: e, key: key, tmpl: tmpl})
		report.AbilityErrors += len(abilityErrs)
	}

	r.mu.Lock()
	for _, b := range batch {
		e, ok := r.byName[b.key]
		if !ok {
			r.nextID++
			e = &entry{id: r.nextID, key: b.key}
			r.byName[b.key] = e
			r.byID[e.id] = e
			report.Added++
		}
		e.source = b.source
		b.tmpl.ID = e.id
		e.tmpl.Store(b.tmpl)
		report.Loaded++
	}
	r.source = src
	total := len(r.byID)
	r.mu.Unlock()

	metrics.TemplateLoads.WithLabelValues(metrics.ResultLoaded).Add(float64(report.Loaded))
	metrics.CreatureTemplates.Set(float64(total))

	slog.Info("loaded creature templates",
		"loaded", report.Loaded,
		"added", report.Added,
		"skipped", len(report.Skipped),
		"abilityErrors", report.AbilityErrors)
	return report, nil
}

// ReloadOne rebuilds a single template from the last loaded source and
// publishes it only if it compiles. Errors are *ReloadError.
func (r *Registry) ReloadOne(name string) error {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	key := model.LookupKey(name)

	r.mu.RLock()
	e, ok := r.byName[key]
	src := r.source
	var entrySource Entry
	if ok {
		entrySource = e.source
	}
	r.mu.RUnlock()

	if !ok || src == nil {
		metrics.TemplateReloads.WithLabelValues(metrics.ResultFailed).Inc()
		return &ReloadError{Name: name, Err: ErrUnknownCreature}
	}

	tmpl, err := r.buildOne(src, entrySource)
	if err != nil {
		metrics.TemplateReloads.WithLabelValues(metrics.ResultFailed).Inc()
		slog.Warn("creature reload failed", "creature", name, "err", err)
		return &ReloadError{Name: name, Err: err}
	}

	tmpl.ID = e.id
	e.tmpl.Store(tmpl)

	metrics.TemplateReloads.WithLabelValues(metrics.ResultOK).Inc()
	slog.Info("reloaded creature template", "creature", name, "id", e.id)
	return nil
}

func (r *Registry) buildOne(src Source, e Entry) (*model.CreatureTemplate, error) {
	rec, err := src.Open(e)
	if err != nil {
		return nil, err
	}
	tmpl, _, err := r.loader.Build(rec, e.File)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// Lookup returns the handle of template id.
func (r *Registry) Lookup(id uint32) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return Handle{e: e}, ok
}

// LookupName returns the handle for name (case-insensitive).
func (r *Registry) LookupName(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[model.LookupKey(name)]
	return Handle{e: e}, ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Handles returns handles of all templates ordered by id.
func (r *Registry) Handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handle, 0, len(r.byID))
	for id := uint32(1); id <= r.nextID; id++ {
		if e, ok := r.byID[id]; ok {
			out = append(out, Handle{e: e})
		}
	}
	return out
}

// OutfitByName returns the outfit of a creature staged in the current load
// pass or already published.
func (r *Registry) OutfitByName(name string) (model.Outfit, bool) {
	key := model.LookupKey(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.staged[key]; ok {
		return t.Outfit, true
	}
	if e, ok := r.byName[key]; ok {
		if t := e.tmpl.Load(); t != nil {
			return t.Outfit, true
		}
	}
	return model.Outfit{}, false
}

func (r *Registry) setStaged(m map[string]*model.CreatureTemplate) {
	r.mu.Lock()
	r.staged = m
	r.mu.Unlock()
}

func (r *Registry) stage(key string, t *model.CreatureTemplate) {
	r.mu.Lock()
	r.staged[key] = t
	r.mu.Unlock()
}
