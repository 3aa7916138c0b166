package model

// Outfit — внешний вид существа.
// LookTypeEx != 0 означает, что существо выглядит как предмет.
type Outfit struct {
	LookType   uint16
	LookHead   uint8
	LookBody   uint8
	LookLegs   uint8
	LookFeet   uint8
	LookTypeEx uint16
}
