package model

import (
	"maps"
	"slices"
	"strings"

	"github.com/udisondev/bestiary/internal/constants"
)

// CreatureTemplate — скомпилированный шаблон существа.
// Собирается целиком вне registry и публикуется атомарно; после публикации read-only.
type CreatureTemplate struct {
	ID              uint32
	Name            string
	NameDescription string
	Race            Race

	Experience     int64
	BaseSpeed      int32
	ManaCost       int32
	Health         int32
	HealthMax      int32
	Defense        int32
	Armor          int32
	TargetDistance int32
	StaticAttack   int32 // chance, 0..100
	RunAwayHealth  int32
	LightLevel     int32
	LightColor     int32

	Pushable         bool
	CanPushItems     bool
	CanPushCreatures bool
	Summonable       bool
	Illusionable     bool
	Convinceable     bool
	Attackable       bool
	Hostile          bool
	Lureable         bool

	Outfit     Outfit
	LookCorpse uint16

	ChangeTargetInterval int32
	ChangeTargetChance   int32

	// Parsed but not used by the simulation.
	StrategyAttack  int32
	StrategyDefense int32

	Elements            map[CombatType]int32 // resistance percent per combat type
	ConditionImmunities ConditionSet
	DamageImmunities    DamageSet

	Attacks  []CompiledAbility
	Defenses []CompiledAbility

	Loot []RewardNode

	MaxSummons int32
	Summons    []Summon

	VoiceInterval int32
	VoiceChance   int32
	Voices        []Voice

	Scripts []string
}

// Summon — существо, которое шаблон может призвать.
type Summon struct {
	Name     string
	Chance   int32
	Interval int32
}

// Voice — фраза существа.
type Voice struct {
	Text   string
	IsYell bool
}

// NewCreatureTemplate returns a template populated with record defaults.
func NewCreatureTemplate() *CreatureTemplate {
	return &CreatureTemplate{
		BaseSpeed:      constants.DefaultCreatureSpeed,
		Health:         constants.DefaultCreatureHealth,
		HealthMax:      constants.DefaultCreatureHealth,
		TargetDistance: constants.DefaultTargetDistance,
		StaticAttack:   constants.DefaultStaticAttackChance,
		Race:           RaceBlood,
		Pushable:       true,
		Attackable:     true,
		Hostile:        true,
		Elements:       make(map[CombatType]int32),
	}
}

// LookupKey returns the case-insensitive registry key for name.
func LookupKey(name string) string {
	return strings.ToLower(name)
}

// IsImmuneTo reports whether the creature ignores damage of combat type c.
func (t *CreatureTemplate) IsImmuneTo(c CombatType) bool {
	return t.DamageImmunities.Has(c)
}

// IsConditionImmune reports whether the creature ignores condition c.
func (t *CreatureTemplate) IsConditionImmune(c ConditionType) bool {
	return t.ConditionImmunities.Has(c)
}

// ElementPercent returns resistance percent for combat type c (0 if not set).
func (t *CreatureTemplate) ElementPercent(c CombatType) int32 {
	return t.Elements[c]
}

// Clone returns a deep copy of the template. Compiled ability payloads are
// immutable and shared between the copies.
func (t *CreatureTemplate) Clone() *CreatureTemplate {
	c := *t
	c.Elements = maps.Clone(t.Elements)
	c.Attacks = slices.Clone(t.Attacks)
	c.Defenses = slices.Clone(t.Defenses)
	c.Loot = cloneRewards(t.Loot)
	c.Summons = slices.Clone(t.Summons)
	c.Voices = slices.Clone(t.Voices)
	c.Scripts = slices.Clone(t.Scripts)
	return &c
}

func cloneRewards(nodes []RewardNode) []RewardNode {
	if nodes == nil {
		return nil
	}
	out := make([]RewardNode, len(nodes))
	for i := range nodes {
		out[i] = nodes[i]
		out[i].Children = cloneRewards(nodes[i].Children)
	}
	return out
}
