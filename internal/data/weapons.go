package data

import "math"

// MaxMeleeDamage returns the maximum melee hit for the given skill and attack values.
// Formula: ceil(skill * attack * 0.05 + attack * 0.5).
func MaxMeleeDamage(skill, attack int) int32 {
	return int32(math.Ceil(float64(skill)*(float64(attack)*0.05) + float64(attack)*0.5))
}
