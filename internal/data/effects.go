package data

import (
	"strings"

	"github.com/udisondev/bestiary/internal/model"
)

// Distance (projectile) effects by name.
var shootEffects = map[string]model.ShootEffect{
	"spear":         0,
	"bolt":          1,
	"arrow":         2,
	"fire":          3,
	"energy":        4,
	"poisonarrow":   5,
	"burstarrow":    6,
	"throwingstar":  7,
	"throwingknife": 8,
	"smallstone":    9,
	"suddendeath":   10,
	"largerock":     11,
	"snowball":      12,
	"powerbolt":     13,
	"poison":        14,
}

// Area (magic) effects by name.
var magicEffects = map[string]model.MagicEffect{
	"redspark":      0,
	"bluebubble":    1,
	"poff":          2,
	"yellowspark":   3,
	"explosionarea": 4,
	"explosion":     5,
	"firearea":      6,
	"yellowbubble":  7,
	"greenbubble":   8,
	"blackspark":    9,
	"teleport":      10,
	"energy":        11,
	"blueshimmer":   12,
	"redshimmer":    13,
	"greenshimmer":  14,
	"fire":          15,
	"greenspark":    16,
	"mortarea":      17,
	"greennote":     18,
	"rednote":       19,
	"poison":        20,
	"yellownote":    21,
	"purplenote":    22,
	"bluenote":      23,
	"whitenote":     24,
}

// ShootEffectByName returns the distance effect for name (case-insensitive).
func ShootEffectByName(name string) (model.ShootEffect, bool) {
	e, ok := shootEffects[strings.ToLower(name)]
	return e, ok
}

// MagicEffectByName returns the area effect for name (case-insensitive).
func MagicEffectByName(name string) (model.MagicEffect, bool) {
	e, ok := magicEffects[strings.ToLower(name)]
	return e, ok
}
