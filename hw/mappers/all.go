package mappers

import (
	"fmt"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

var modMapper = log.NewModule("mapper")

// Load creates the mapper declared in the rom header. onMirroring is called
// each time the mapper changes the nametable mirroring.
func Load(rom *ines.Rom, onMirroring func()) (hw.Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, &ines.UnsupportedFeatureError{
			Feature: fmt.Sprintf("mapper %d", rom.Mapper()),
		}
	}
	if onMirroring == nil {
		onMirroring = func() {}
	}

	m := desc.New(newbase(desc, rom, onMirroring))
	modMapper.InfoZ("Mapper loaded").
		String("name", desc.Name).
		Uint8("id", rom.Mapper()).
		Int("prg", len(rom.PRG)).
		Int("chr", len(rom.CHR)).
		Stringer("mirroring", m.Mirroring()).
		End()
	return m, nil
}

type MapperDesc struct {
	Name string
	New  func(*base) hw.Mapper
}

var All = map[uint8]MapperDesc{
	0: NROM,
	1: SxROM,
	2: UxROM,
	3: CNROM,
}

// Name returns the name of the mapper with the given id, or "unknown".
func Name(id uint8) string {
	if desc, ok := All[id]; ok {
		return desc.Name
	}
	return "unknown"
}
