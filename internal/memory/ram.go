package memory

import (
	"encoding/binary"

	"github.com/nevisdale/amichip/internal/bus"
)

// RAMPage is a page of RAM. ROM is a RAMPage with the WriteProtect flag set.
type RAMPage struct {
	Permissions
	ram [bus.PageSize]uint8
}

func NewRAMPage() *RAMPage {
	return &RAMPage{}
}

// NewRAMPageFrom creates a RAMPage initialised with data. Data longer than a
// page is truncated.
func NewRAMPageFrom(data []uint8) *RAMPage {
	r := &RAMPage{}
	copy(r.ram[:], data)
	return r
}

func (r *RAMPage) Read8(addr uint32) uint8 {
	return r.ram[addr&bus.PageMask]
}

func (r *RAMPage) Read16(addr uint32) uint16 {
	return binary.BigEndian.Uint16(r.ram[addr&bus.PageMask&^1:])
}

func (r *RAMPage) Write8(addr uint32, data uint8) {
	r.ram[addr&bus.PageMask] = data
}

func (r *RAMPage) Write16(addr uint32, data uint16) {
	binary.BigEndian.PutUint16(r.ram[addr&bus.PageMask&^1:], data)
}

func (r *RAMPage) Peek8(addr uint32) uint8 {
	return r.Read8(addr)
}

func (r *RAMPage) Peek16(addr uint32) uint16 {
	return r.Read16(addr)
}

func (r *RAMPage) writeBlock(addr uint32, data []uint8) {
	copy(r.ram[addr&bus.PageMask:], data)
}
