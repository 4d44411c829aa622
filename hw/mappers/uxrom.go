package mappers

import "nescore/hw"

var UxROM = MapperDesc{
	Name: "UxROM",
	New:  newUxROM,
}

type uxrom struct {
	*base
}

func newUxROM(b *base) hw.Mapper {
	return &uxrom{base: b}
}

// WritePRG selects the 16KB bank at $8000-$BFFF, $C000-$FFFF is fixed to the
// last bank.
func (m *uxrom) WritePRG(addr uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	m.selectPRGPage16KB(0, int(val))

	modMapper.DebugZ("Select PRG bank").
		String("mapper", m.desc.Name).
		Hex16("addr", addr).
		Uint8("bank", val).
		End()
}
