package chipset

import (
	"github.com/nevisdale/amichip/internal/cia"
	"github.com/nevisdale/amichip/internal/memory"
)

// CIAPage is a page of the CIA window. Address bit 13 selects the chip:
// $bfexxx is CIA-A, $bfdxxx is CIA-B. Bits 11-8 select the register.
//
// CIA-A is wired to the low half of the data bus and CIA-B to the high half,
// which is why CIA-A registers are at odd addresses and CIA-B registers at
// even addresses. Bit 0 is not decoded.
type CIAPage struct {
	memory.Permissions
	a *cia.CIA
	b *cia.CIA
}

func NewCIAPage(a, b *cia.CIA) *CIAPage {
	return &CIAPage{a: a, b: b}
}

func (p *CIAPage) chip(addr uint32) *cia.CIA {
	if addr&(1<<13) != 0 {
		return p.a
	}
	return p.b
}

func register(addr uint32) int {
	return int(addr>>8) & 0xf
}

func (p *CIAPage) Read8(addr uint32) uint8 {
	return p.chip(addr).Read(register(addr))
}

// Read16 returns the register on both halves of the word.
func (p *CIAPage) Read16(addr uint32) uint16 {
	v := p.Read8(addr)
	return uint16(v)<<8 | uint16(v)
}

func (p *CIAPage) Write8(addr uint32, data uint8) {
	p.chip(addr).Write(register(addr), data)
}

// Write16 writes the half of the word the selected chip is wired to.
func (p *CIAPage) Write16(addr uint32, data uint16) {
	c := p.chip(addr)
	if c == p.a {
		c.Write(register(addr), uint8(data))
		return
	}
	c.Write(register(addr), uint8(data>>8))
}

func (p *CIAPage) Peek8(addr uint32) uint8 {
	return p.Read8(addr)
}

func (p *CIAPage) Peek16(addr uint32) uint16 {
	return p.Read16(addr)
}
