package ability

import (
	"log/slog"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/data"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

// synthFunc fills action (and, for melee, the common ability fields) from rec.
type synthFunc func(c *Compiler, rec *record.Node, context string, ab *model.CompiledAbility, action *model.SynthesizedAction)

// synthRules maps lower-cased ability name → construction rule.
// Populated by init().
var synthRules = map[string]synthFunc{}

func registerRule(name string, fn synthFunc) {
	synthRules[name] = fn
}

// Names returns the recognized ability names.
func Names() []string {
	names := make([]string, 0, len(synthRules))
	for name := range synthRules {
		names = append(names, name)
	}
	return names
}

func init() {
	registerRule("melee", synthMelee)
	registerRule("physical", func(_ *Compiler, _ *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
		a.CombatType = model.CombatPhysical
		a.BlockedByArmor = true
	})
	registerRule("poison", combatOnly(model.CombatPoison))
	registerRule("fire", combatOnly(model.CombatFire))
	registerRule("energy", combatOnly(model.CombatEnergy))
	registerRule("lifedrain", combatOnly(model.CombatLifeDrain))
	registerRule("manadrain", combatOnly(model.CombatManaDrain))
	registerRule("healing", func(_ *Compiler, _ *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
		a.CombatType = model.CombatHealing
		a.Aggressive = false
	})
	registerRule("speed", synthSpeed)
	registerRule("outfit", synthOutfit)
	registerRule("invisible", timedStatus(model.ConditionInvisible, false))
	registerRule("drunk", timedStatus(model.ConditionDrunk, true))
	registerRule("firefield", field(constants.ItemFireField))
	registerRule("poisonfield", field(constants.ItemPoisonField))
	registerRule("energyfield", field(constants.ItemEnergyField))
	registerRule("firecondition", damageCondition(model.ConditionFire))
	registerRule("poisoncondition", damageCondition(model.ConditionPoison))
	registerRule("energycondition", damageCondition(model.ConditionEnergy))
	registerRule("strength", func(*Compiler, *record.Node, string, *model.CompiledAbility, *model.SynthesizedAction) {})
}

func combatOnly(t model.CombatType) synthFunc {
	return func(_ *Compiler, _ *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
		a.CombatType = t
	}
}

func field(itemID int32) synthFunc {
	return func(_ *Compiler, _ *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
		a.CreateItem = itemID
	}
}

// defaultTick returns the damage-over-time tick interval for a condition kind.
func defaultTick(kind model.ConditionType) int {
	switch kind {
	case model.ConditionFire:
		return constants.TickIntervalFire
	case model.ConditionEnergy:
		return constants.TickIntervalEnergy
	case model.ConditionPoison:
		return constants.TickIntervalPoison
	default:
		return constants.TickIntervalDefault
	}
}

// tickOverride applies an explicit tick= only when it is positive.
func tickOverride(rec *record.Node, tick int) int {
	if v, ok := rec.Int("tick"); ok && v > 0 {
		return v
	}
	return tick
}

func duration(rec *record.Node) int {
	if v, ok := rec.Int("duration"); ok {
		return v
	}
	return constants.DefaultConditionDuration
}

func synthMelee(_ *Compiler, rec *record.Node, _ string, ab *model.CompiledAbility, a *model.SynthesizedAction) {
	ab.Melee = true

	if attack, ok := rec.Int("attack"); ok {
		if skill, ok := rec.Int("skill"); ok {
			ab.MinValue = 0
			ab.MaxValue = -data.MaxMeleeDamage(skill, attack)
		}
	}

	// Only the first of fire/poison/energy is honored.
	var (
		kind  model.ConditionType
		value int
		found bool
	)
	for _, dot := range []struct {
		attr string
		kind model.ConditionType
	}{
		{"fire", model.ConditionFire},
		{"poison", model.ConditionPoison},
		{"energy", model.ConditionEnergy},
	} {
		if v, ok := rec.Int(dot.attr); ok {
			kind, value, found = dot.kind, v, true
			break
		}
	}

	if found {
		a.Status = &model.StatusEffect{
			Kind:         kind,
			MinValue:     int32(value),
			MaxValue:     int32(value),
			TickInterval: tickOverride(rec, defaultTick(kind)),
		}
	}

	ab.Range = 1
	a.CombatType = model.CombatPhysical
	a.BlockedByArmor = true
	a.BlockedByShield = true
}

func synthSpeed(_ *Compiler, rec *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
	var change int32
	if v, ok := rec.Int("speedchange"); ok {
		change = int32(max(v, constants.MinSpeedChange))
	}

	kind := model.ConditionParalyze
	if change > 0 {
		kind = model.ConditionHaste
		a.Aggressive = false
	}

	a.Status = &model.StatusEffect{
		Kind:        kind,
		Duration:    duration(rec),
		SpeedChange: change,
	}
}

func synthOutfit(c *Compiler, rec *record.Node, context string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
	d := duration(rec)

	if name, ok := rec.Attr("monster"); ok {
		if c.outfits == nil {
			slog.Warn("outfit ability: no creature lookup", "creature", context, "monster", name)
			return
		}
		outfit, ok := c.outfits.OutfitByName(name)
		if !ok {
			slog.Warn("outfit ability: unknown creature", "creature", context, "monster", name)
			return
		}
		a.Status = &model.StatusEffect{Kind: model.ConditionOutfit, Duration: d, Outfit: &outfit}
		a.Aggressive = false
		return
	}

	if item, ok := rec.Int("item"); ok {
		outfit := model.Outfit{LookTypeEx: uint16(item)}
		a.Status = &model.StatusEffect{Kind: model.ConditionOutfit, Duration: d, Outfit: &outfit}
		a.Aggressive = false
	}
}

func timedStatus(kind model.ConditionType, aggressive bool) synthFunc {
	return func(_ *Compiler, rec *record.Node, _ string, _ *model.CompiledAbility, a *model.SynthesizedAction) {
		a.Status = &model.StatusEffect{Kind: kind, Duration: duration(rec)}
		if !aggressive {
			a.Aggressive = false
		}
	}
}

// damageCondition builds a damage-over-time status from the already read
// min/max. start= is honored only when |start| ≤ |min|.
func damageCondition(kind model.ConditionType) synthFunc {
	return func(_ *Compiler, rec *record.Node, _ string, ab *model.CompiledAbility, a *model.SynthesizedAction) {
		minDamage := abs32(ab.MinValue)
		maxDamage := abs32(ab.MaxValue)

		var start int32
		if v, ok := rec.Int("start"); ok {
			if s := abs32(int32(v)); s <= minDamage {
				start = s
			}
		}

		a.Status = &model.StatusEffect{
			Kind:         kind,
			MinValue:     minDamage,
			MaxValue:     maxDamage,
			StartValue:   start,
			TickInterval: tickOverride(rec, defaultTick(kind)),
		}
	}
}
