// Package ability compiles declarative ability records into immutable
// CompiledAbility values: a reference to a shared ability, a scripted action,
// or an action synthesized from the ability name.
package ability

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/data"
	"github.com/udisondev/bestiary/internal/metrics"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

// OutfitLookup resolves the outfit of an already known creature template.
type OutfitLookup interface {
	OutfitByName(name string) (model.Outfit, bool)
}

// ScriptHost attaches named ability scripts.
type ScriptHost interface {
	Attach(script string) (model.ScriptCallable, error)
}

// Compiler translates ability records into CompiledAbility.
// Compilation never mutates registry state.
type Compiler struct {
	shared       *SharedTable
	scripts      ScriptHost
	outfits      OutfitLookup
	maxViewportX int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithSharedTable sets the table of shared abilities referenced by exact name.
func WithSharedTable(t *SharedTable) Option {
	return func(c *Compiler) { c.shared = t }
}

// WithScriptHost sets the host used for script= abilities.
func WithScriptHost(h ScriptHost) Option {
	return func(c *Compiler) { c.scripts = h }
}

// WithOutfitLookup sets the lookup used by outfit abilities naming a creature.
func WithOutfitLookup(l OutfitLookup) Option {
	return func(c *Compiler) { c.outfits = l }
}

// WithMaxViewportX overrides the viewport half-width used to clamp range.
func WithMaxViewportX(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.maxViewportX = n
		}
	}
}

// NewCompiler creates a compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{maxViewportX: constants.MaxViewportX}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetOutfitLookup replaces the outfit lookup. Used by the registry, which
// exists only after the compiler is built.
func (c *Compiler) SetOutfitLookup(l OutfitLookup) {
	c.outfits = l
}

// Compile translates one ability record. context names the owner (creature
// name) for diagnostics. Errors are *CompileError.
func (c *Compiler) Compile(rec *record.Node, context string) (*model.CompiledAbility, error) {
	ab, err := c.compile(rec, context, true)
	if err != nil {
		metrics.AbilityCompileErrors.WithLabelValues(reason(err)).Inc()
		return nil, err
	}
	return ab, nil
}

// CompileList compiles every record, dropping the ones that fail.
// Order of the surviving abilities follows the records.
func (c *Compiler) CompileList(recs []*record.Node, context string) ([]model.CompiledAbility, []error) {
	var (
		out  []model.CompiledAbility
		errs []error
	)
	for _, rec := range recs {
		ab, err := c.Compile(rec, context)
		if err != nil {
			slog.Warn("cannot load ability", "creature", context, "err", err)
			errs = append(errs, err)
			continue
		}
		out = append(out, *ab)
	}
	return out, errs
}

func (c *Compiler) compile(rec *record.Node, context string, allowShared bool) (*model.CompiledAbility, error) {
	name, hasName := rec.Attr("name")
	script, scripted := rec.Attr("script")
	if !scripted && !hasName {
		return nil, &CompileError{Context: context, Err: ErrMissingName}
	}

	ab := &model.CompiledAbility{
		Chance:   constants.DefaultAbilityChance,
		Interval: constants.DefaultAbilityInterval,
	}
	c.readCommon(rec, ab)

	if !scripted && allowShared && c.shared != nil {
		if shared, ok := c.shared.Lookup(name); ok {
			ab.Payload = &model.SharedRef{Shared: shared}
			return ab, nil
		}
	}

	if scripted {
		action, err := c.attachScript(rec, script)
		if err != nil {
			return nil, &CompileError{Context: context, Ability: script, Err: err}
		}
		ab.Payload = action
		return ab, nil
	}

	action, err := c.synthesize(rec, name, context, ab)
	if err != nil {
		return nil, &CompileError{Context: context, Ability: name, Err: err}
	}
	ab.Payload = action
	return ab, nil
}

// readCommon reads interval, chance, range and magnitude, with clamping and
// min/max normalization.
func (c *Compiler) readCommon(rec *record.Node, ab *model.CompiledAbility) {
	if v, ok := rec.FirstInt("speed", "interval"); ok {
		ab.Interval = max(1, v)
	}

	if v, ok := rec.Int("chance"); ok {
		ab.Chance = min(max(v, 0), 100)
	}

	if v, ok := rec.Int("range"); ok {
		ab.Range = min(max(v, 0), c.maxViewportX*2)
	}

	if v, ok := rec.Int("min"); ok {
		ab.MinValue = int32(v)
	}

	if v, ok := rec.Int("max"); ok {
		ab.MaxValue = int32(v)

		// Literal swap: signs travel with their values.
		if abs32(ab.MinValue) > abs32(ab.MaxValue) {
			ab.MinValue, ab.MaxValue = ab.MaxValue, ab.MinValue
		}
	}
}

func (c *Compiler) attachScript(rec *record.Node, script string) (*model.ScriptedAction, error) {
	action := &model.ScriptedAction{Script: script}

	if v, ok := rec.Int("direction"); ok {
		action.NeedDirection = v == 1
	}
	if v, ok := rec.Int("target"); ok {
		action.NeedTarget = v != 0
	}

	if c.scripts == nil {
		return nil, fmt.Errorf("%w: no script host configured", ErrScriptAttach)
	}
	callable, err := c.scripts.Attach(script)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptAttach, err)
	}
	action.Callable = callable
	return action, nil
}

func (c *Compiler) synthesize(rec *record.Node, name, context string, ab *model.CompiledAbility) (*model.SynthesizedAction, error) {
	key := strings.ToLower(name)
	rule, ok := synthRules[key]
	if !ok {
		slog.Error("unknown ability name", "creature", context, "name", name)
		return nil, ErrUnknownAbility
	}

	action := &model.SynthesizedAction{Name: key, Aggressive: true}
	if err := readArea(rec, action); err != nil {
		return nil, err
	}

	rule(c, rec, context, ab, action)
	readEffects(rec, context, action)
	return action, nil
}

// readArea applies an explicit shape: length(+spread) → directional,
// radius → radial. A later radius replaces an earlier directional area.
func readArea(rec *record.Node, action *model.SynthesizedAction) error {
	if rec.Has("length") {
		length, ok := rec.Int("length")
		if !ok {
			return fmt.Errorf("%w: length is not an integer", ErrMalformedArea)
		}

		if length > 0 {
			spread := constants.DefaultAreaSpread
			if rec.Has("spread") {
				v, ok := rec.Int("spread")
				if !ok {
					return fmt.Errorf("%w: spread is not an integer", ErrMalformedArea)
				}
				spread = max(0, v)
			}

			action.Area = model.Area{Shape: model.AreaDirectional, Length: length, Spread: spread}
			action.NeedDirection = true
		}
	}

	if rec.Has("radius") {
		radius, ok := rec.Int("radius")
		if !ok {
			return fmt.Errorf("%w: radius is not an integer", ErrMalformedArea)
		}
		if radius < 0 {
			return fmt.Errorf("%w: negative radius %d", ErrMalformedArea, radius)
		}

		if v, ok := rec.Int("target"); ok {
			action.NeedTarget = v != 0
		}
		action.Area = model.Area{Shape: model.AreaRadial, Radius: radius}
	}

	return nil
}

// readEffects reads <attribute key= value=> children. Unknown effect names
// are logged and ignored.
func readEffects(rec *record.Node, context string, action *model.SynthesizedAction) {
	for _, attr := range rec.ChildrenNamed("attribute") {
		key, ok := attr.Attr("key")
		if !ok {
			continue
		}
		value, ok := attr.Attr("value")
		if !ok {
			continue
		}

		switch strings.ToLower(key) {
		case "shooteffect":
			if effect, ok := data.ShootEffectByName(value); ok {
				action.ShootEffect = effect
				action.HasShootEffect = true
			} else {
				slog.Warn("unknown shoot effect", "creature", context, "ability", action.Name, "value", value)
			}
		case "areaeffect":
			if effect, ok := data.MagicEffectByName(value); ok {
				action.AreaEffect = effect
				action.HasAreaEffect = true
			} else {
				slog.Warn("unknown area effect", "creature", context, "ability", action.Name, "value", value)
			}
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
