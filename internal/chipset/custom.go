package chipset

import (
	"github.com/nevisdale/amichip/internal/chipreg"
	"github.com/nevisdale/amichip/internal/logger"
	"github.com/nevisdale/amichip/internal/memory"
)

// CustomChipPage is a page of the custom chip register window. The registers
// occupy $000-$1ff and are mirrored across the page.
//
// $002-$01e: read registers (DMACONR, VPOSR, VHPOSR, INTENAR, INTREQR)
// $02e     : COPCON
// $040-$074: blitter
// $080-$094: copper and display window
// $096-$09c: DMACON, INTENA, INTREQ
// $0e0-$1e5: bitplanes, sprites, colours and timing
type CustomChipPage struct {
	memory.Permissions
	chips *Chips
}

func NewCustomChipPage(chips *Chips) *CustomChipPage {
	return &CustomChipPage{chips: chips}
}

func (p *CustomChipPage) Read8(addr uint32) uint8 {
	return chipreg.Word(p.chips.ReadRegister(logger.Allow, addr)).Byte(addr)
}

func (p *CustomChipPage) Read16(addr uint32) uint16 {
	return p.chips.ReadRegister(logger.Allow, addr)
}

func (p *CustomChipPage) Write8(addr uint32, data uint8) {
	p.chips.writeByte(addr, data)
}

func (p *CustomChipPage) Write16(addr uint32, data uint16) {
	p.chips.WriteRegister(addr, data)
}

func (p *CustomChipPage) Peek8(addr uint32) uint8 {
	return chipreg.Word(p.chips.ReadRegister(logger.Deny, addr)).Byte(addr)
}

func (p *CustomChipPage) Peek16(addr uint32) uint16 {
	return p.chips.ReadRegister(logger.Deny, addr)
}
