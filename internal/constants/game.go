package constants

// Loot roll constants
const (
	// MaxLootChance is the upper bound of the loot roll space (SCALE).
	// A reward chance of MaxLootChance always drops.
	MaxLootChance = 100000

	// MaxLootCount caps countmax of a single reward entry.
	MaxLootCount = 100

	// DefaultCorpseItem and DefaultCorpseCapacity stand in for a creature
	// whose corpse is unknown to the item catalog.
	DefaultCorpseItem     = 3058
	DefaultCorpseCapacity = 10
)

// Ability constants
const (
	// MaxViewportX is the default half-width of the client viewport in tiles.
	// Ability range is clamped to [0, 2*MaxViewportX].
	MaxViewportX = 8

	// DefaultAbilityChance is the trigger chance (percent) of an ability without chance attr.
	DefaultAbilityChance = 100

	// DefaultAbilityInterval is the cast interval (ms) of an ability without interval attr.
	DefaultAbilityInterval = 2000

	// DefaultConditionDuration is the duration (ms) of speed/outfit/invisible/drunk statuses.
	DefaultConditionDuration = 10000

	// MinSpeedChange — creature cannot be slowed below standing still.
	MinSpeedChange = -1000

	// DefaultAreaSpread is the spread of a directional area without spread attr.
	DefaultAreaSpread = 3
)

// Damage-over-time tick intervals (ms).
const (
	TickIntervalDefault = 2000
	TickIntervalFire    = 10000
	TickIntervalEnergy  = 10000
	TickIntervalPoison  = 5000
)

// Map field items spawned by field abilities.
const (
	ItemFireField   = 1492
	ItemEnergyField = 1495
	ItemPoisonField = 1496
)

// Creature template defaults (record without the corresponding field).
const (
	DefaultCreatureSpeed      = 200
	DefaultCreatureHealth     = 100
	DefaultStaticAttackChance = 95
	DefaultTargetDistance     = 1
	MaxSummons                = 100
	DefaultSummonChance       = 100
	DefaultSummonInterval     = 1000
)
