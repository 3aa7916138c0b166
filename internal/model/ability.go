package model

// CompiledAbility — скомпилированная способность существа (attack или defense).
// Immutable snapshot: после компиляции не меняется и не ссылается на исходную запись.
type CompiledAbility struct {
	Chance   int // trigger chance, 0..100
	Interval int // cast interval in ms, ≥1
	Range    int // 0..2*maxViewportX

	// MinValue/MaxValue — signed magnitude (negative = damage, positive = heal).
	MinValue int32
	MaxValue int32

	Melee   bool
	Payload AbilityPayload
}

// AbilityPayload is a closed set of ability payload variants:
// *SharedRef, *ScriptedAction, *SynthesizedAction.
type AbilityPayload interface {
	payloadKind() PayloadKind
}

// PayloadKind discriminates AbilityPayload variants.
type PayloadKind uint8

const (
	PayloadShared PayloadKind = iota + 1
	PayloadScripted
	PayloadSynthesized
)

// Kind returns the payload discriminant, 0 when the ability has no payload.
func (a *CompiledAbility) Kind() PayloadKind {
	if a.Payload == nil {
		return 0
	}
	return a.Payload.payloadKind()
}

// SharedAbility — именованная заранее скомпилированная способность,
// переиспользуемая несколькими шаблонами по ссылке.
type SharedAbility struct {
	Name    string
	Ability *CompiledAbility
}

// SharedRef references a SharedAbility. Shared abilities are never re-synthesized.
type SharedRef struct {
	Shared *SharedAbility
}

func (*SharedRef) payloadKind() PayloadKind { return PayloadShared }

// ScriptCallable — opaque handle to an attached ability script.
type ScriptCallable interface {
	// Cast runs the script for caster against target with the ability's magnitude bounds.
	Cast(casterID, targetID uint32, minValue, maxValue int32) (bool, error)
}

// ScriptedAction — способность, поведение которой определяет внешний скрипт.
type ScriptedAction struct {
	Script        string
	NeedTarget    bool
	NeedDirection bool
	Callable      ScriptCallable
}

func (*ScriptedAction) payloadKind() PayloadKind { return PayloadScripted }

// AreaShape — форма области действия.
type AreaShape uint8

const (
	AreaNone AreaShape = iota
	AreaDirectional
	AreaRadial
)

// String returns human-readable area shape name.
func (s AreaShape) String() string {
	switch s {
	case AreaDirectional:
		return "directional"
	case AreaRadial:
		return "radial"
	default:
		return "none"
	}
}

// Area describes the affected tiles of a synthesized action.
type Area struct {
	Shape  AreaShape
	Length int // directional only
	Spread int // directional only
	Radius int // radial only
}

// StatusEffect — параметры condition, накладываемого способностью.
type StatusEffect struct {
	Kind     ConditionType
	Duration int // ms, 0 for damage-over-time (runs until ticks are exhausted)

	// Damage over time.
	MinValue     int32
	MaxValue     int32
	StartValue   int32
	TickInterval int // ms
	Delayed      bool

	// Speed (haste/paralyze): change in 1/1000 of base speed.
	SpeedChange int32

	// Outfit override.
	Outfit *Outfit
}

// SpeedFactor returns SpeedChange as a fraction of base speed.
func (s *StatusEffect) SpeedFactor() float64 {
	return float64(s.SpeedChange) / 1000.0
}

// SynthesizedAction — действие, собранное компилятором по имени способности.
type SynthesizedAction struct {
	Name       string // canonical (lower-cased) ability name
	Area       Area
	CombatType CombatType
	Status     *StatusEffect

	ShootEffect    ShootEffect
	HasShootEffect bool
	AreaEffect     MagicEffect
	HasAreaEffect  bool

	CreateItem int32 // map field item to spawn, 0 if none

	NeedTarget      bool
	NeedDirection   bool
	BlockedByArmor  bool
	BlockedByShield bool
	Aggressive      bool
}

func (*SynthesizedAction) payloadKind() PayloadKind { return PayloadSynthesized }

// ShootEffect — distance (projectile) visual effect id.
type ShootEffect uint8

// MagicEffect — area visual effect id.
type MagicEffect uint8
