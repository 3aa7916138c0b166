package model

// CombatType — классификация урона/эффекта. Значения — битовые флаги,
// поэтому набор иммунитетов хранится как DamageSet.
type CombatType uint16

const (
	CombatNone     CombatType = 0
	CombatPhysical CombatType = 1 << (iota - 1)
	CombatEnergy
	CombatPoison
	CombatFire
	CombatUndefined
	CombatLifeDrain
	CombatManaDrain
	CombatHealing
)

// String returns human-readable combat type name.
func (c CombatType) String() string {
	switch c {
	case CombatNone:
		return "None"
	case CombatPhysical:
		return "Physical"
	case CombatEnergy:
		return "Energy"
	case CombatPoison:
		return "Poison"
	case CombatFire:
		return "Fire"
	case CombatUndefined:
		return "Undefined"
	case CombatLifeDrain:
		return "LifeDrain"
	case CombatManaDrain:
		return "ManaDrain"
	case CombatHealing:
		return "Healing"
	default:
		return "Unknown"
	}
}

// DamageSet — bit-set over CombatType.
type DamageSet uint16

// Has reports whether c is in the set.
func (s DamageSet) Has(c CombatType) bool { return c != CombatNone && s&DamageSet(c) != 0 }

// With returns the set with c added.
func (s DamageSet) With(c CombatType) DamageSet { return s | DamageSet(c) }

// ConditionType — вид статус-эффекта (condition).
type ConditionType uint16

const (
	ConditionNone     ConditionType = 0
	ConditionPoison   ConditionType = 1 << (iota - 1)
	ConditionFire
	ConditionEnergy
	ConditionLifeDrain
	ConditionHaste
	ConditionParalyze
	ConditionOutfit
	ConditionInvisible
	ConditionDrunk
)

// String returns human-readable condition name.
func (c ConditionType) String() string {
	switch c {
	case ConditionNone:
		return "None"
	case ConditionPoison:
		return "Poison"
	case ConditionFire:
		return "Fire"
	case ConditionEnergy:
		return "Energy"
	case ConditionLifeDrain:
		return "LifeDrain"
	case ConditionHaste:
		return "Haste"
	case ConditionParalyze:
		return "Paralyze"
	case ConditionOutfit:
		return "Outfit"
	case ConditionInvisible:
		return "Invisible"
	case ConditionDrunk:
		return "Drunk"
	default:
		return "Unknown"
	}
}

// IsDamageOverTime reports whether the condition deals periodic damage.
func (c ConditionType) IsDamageOverTime() bool {
	return c == ConditionPoison || c == ConditionFire || c == ConditionEnergy
}

// ConditionSet — bit-set over ConditionType.
type ConditionSet uint16

// Has reports whether c is in the set.
func (s ConditionSet) Has(c ConditionType) bool { return c != ConditionNone && s&ConditionSet(c) != 0 }

// With returns the set with c added.
func (s ConditionSet) With(c ConditionType) ConditionSet { return s | ConditionSet(c) }

// Race определяет тип крови/тела существа (влияет на эффекты при ударе).
type Race uint8

const (
	RaceNone Race = iota
	RaceVenom
	RaceBlood
	RaceUndead
	RaceFire
)

// String returns human-readable race name.
func (r Race) String() string {
	switch r {
	case RaceVenom:
		return "venom"
	case RaceBlood:
		return "blood"
	case RaceUndead:
		return "undead"
	case RaceFire:
		return "fire"
	default:
		return "none"
	}
}
