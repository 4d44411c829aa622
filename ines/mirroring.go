package ines

//go:generate go tool stringer -type=Mirroring

// Mirroring describes how the 4 logical nametables are mapped onto the 2KB of
// nametable RAM.
type Mirroring uint8

const (
	Horizontal      Mirroring = 0
	Vertical        Mirroring = 1
	FourScreen      Mirroring = 8
	OneScreenLower  Mirroring = 9
	OneScreenHigher Mirroring = 10
)
