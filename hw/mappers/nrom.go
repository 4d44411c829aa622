package mappers

import "nescore/hw"

var NROM = MapperDesc{
	Name: "NROM",
	New:  newNROM,
}

// nrom has no bank switching. With a single 16KB bank, $C000-$FFFF mirrors
// $8000-$BFFF.
type nrom struct {
	*base
}

func newNROM(b *base) hw.Mapper {
	return &nrom{base: b}
}
