package ines

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-faster/jx"
)

// PrintInfos writes a human readable summary of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "PRG-ROM\t%d x 16KB\n", rom.PRGBanks())
	if rom.HasCHRRAM() {
		fmt.Fprintf(tw, "CHR\t8KB RAM\n")
	} else {
		fmt.Fprintf(tw, "CHR-ROM\t%d x 8KB\n", rom.CHRBanks())
	}
	fmt.Fprintf(tw, "Mapper\t%d\n", rom.Mapper())
	fmt.Fprintf(tw, "Mirroring\t%s\n", rom.Mirroring())
	fmt.Fprintf(tw, "Extended RAM\t%t\n", rom.HasExtendedRAM())
	return tw.Flush()
}

// EncodeJSON writes the rom header infos as a JSON object.
func (rom *Rom) EncodeJSON(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("prg_banks")
	e.Int(rom.PRGBanks())
	e.FieldStart("chr_banks")
	e.Int(rom.CHRBanks())
	e.FieldStart("chr_ram")
	e.Bool(rom.HasCHRRAM())
	e.FieldStart("mapper")
	e.UInt8(rom.Mapper())
	e.FieldStart("mirroring")
	e.Str(rom.Mirroring().String())
	e.FieldStart("extended_ram")
	e.Bool(rom.HasExtendedRAM())
	e.ObjEnd()
}
