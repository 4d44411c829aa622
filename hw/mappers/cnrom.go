package mappers

import "nescore/hw"

var CNROM = MapperDesc{
	Name: "CNROM",
	New:  newCNROM,
}

type cnrom struct {
	*base
}

func newCNROM(b *base) hw.Mapper {
	return &cnrom{base: b}
}

func (m *cnrom) WritePRG(addr uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	//            (only the 2 low bits are used)
	bank := val & 0x03
	m.selectCHRPage8KB(int(bank))

	modMapper.DebugZ("Select CHR bank").
		String("mapper", m.desc.Name).
		Hex16("addr", addr).
		Uint8("bank", bank).
		End()
}
