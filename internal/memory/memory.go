package memory

import (
	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/curated"
	"github.com/nevisdale/amichip/internal/logger"
)

// AccessObserver is notified of every checked memory access. Breakpoints are
// implemented with it.
type AccessObserver interface {
	CheckRead(addr uint32, size int)
	CheckWrite(addr uint32, size int, data uint32)
}

// Memory is the view of the address space used by the CPU and by the DMA
// engines.
//
// The plain Read/Write functions enforce alignment and notify the
// AccessObserver. They are for the CPU.
//
// The NoCheck functions skip both. They are for the custom chips, which never
// produce odd addresses (bit 0 is ignored) and must not trigger breakpoints.
//
// The Peek functions have no side effects at all and are for inspection
// tools. The Poke functions are their writing counterparts: alignment and
// write protection are enforced but the AccessObserver is not notified.
type Memory struct {
	mmu      *MMU
	observer AccessObserver
}

func NewMemory(mmu *MMU) *Memory {
	return &Memory{mmu: mmu}
}

// SetObserver sets the AccessObserver. A nil observer is allowed.
func (m *Memory) SetObserver(o AccessObserver) {
	m.observer = o
}

func (m *Memory) MMU() *MMU {
	return m.mmu
}

func (m *Memory) page(addr uint32) (Page, error) {
	return m.mmu.GetPage(bus.PageNumber(addr))
}

// mustPage is used by the NoCheck paths. a missing page is a bug in the fault
// handler and the DMA engines have no way of reporting it to the guest.
func (m *Memory) mustPage(addr uint32) Page {
	pg, err := m.page(addr)
	if err != nil {
		panic(err)
	}
	return pg
}

func alignment(addr uint32, size int) error {
	if addr&1 != 0 {
		return curated.Errorf(BadAlignment, addr, size)
	}
	return nil
}

func (m *Memory) Read8(addr uint32) (uint8, error) {
	addr &= bus.AddressMask
	pg, err := m.page(addr)
	if err != nil {
		return 0, err
	}
	if m.observer != nil {
		m.observer.CheckRead(addr, 1)
	}
	return pg.Read8(addr), nil
}

func (m *Memory) Read16(addr uint32) (uint16, error) {
	addr &= bus.AddressMask
	if err := alignment(addr, 2); err != nil {
		return 0, err
	}
	pg, err := m.page(addr)
	if err != nil {
		return 0, err
	}
	if m.observer != nil {
		m.observer.CheckRead(addr, 2)
	}
	return pg.Read16(addr), nil
}

// Read32 reads two words. The words may be in different pages.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	addr &= bus.AddressMask
	if err := alignment(addr, 4); err != nil {
		return 0, err
	}
	hi, err := m.page(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.page(addr + 2)
	if err != nil {
		return 0, err
	}
	if m.observer != nil {
		m.observer.CheckRead(addr, 4)
	}
	return uint32(hi.Read16(addr))<<16 | uint32(lo.Read16((addr+2)&bus.AddressMask)), nil
}

func (m *Memory) Write8(addr uint32, data uint8) error {
	addr &= bus.AddressMask
	pg, err := m.page(addr)
	if err != nil {
		return err
	}
	if m.observer != nil {
		m.observer.CheckWrite(addr, 1, uint32(data))
	}
	if !pg.IsWriteable() {
		return curated.Errorf(WriteProtected, addr)
	}
	pg.Write8(addr, data)
	return nil
}

func (m *Memory) Write16(addr uint32, data uint16) error {
	addr &= bus.AddressMask
	if err := alignment(addr, 2); err != nil {
		return err
	}
	pg, err := m.page(addr)
	if err != nil {
		return err
	}
	if m.observer != nil {
		m.observer.CheckWrite(addr, 2, uint32(data))
	}
	if !pg.IsWriteable() {
		return curated.Errorf(WriteProtected, addr)
	}
	pg.Write16(addr, data)
	return nil
}

// Write32 writes two words. Both pages are checked for write protection
// before either word is written.
func (m *Memory) Write32(addr uint32, data uint32) error {
	addr &= bus.AddressMask
	if err := alignment(addr, 4); err != nil {
		return err
	}
	hi, err := m.page(addr)
	if err != nil {
		return err
	}
	lo, err := m.page(addr + 2)
	if err != nil {
		return err
	}
	if m.observer != nil {
		m.observer.CheckWrite(addr, 4, data)
	}
	if !hi.IsWriteable() {
		return curated.Errorf(WriteProtected, addr)
	}
	if !lo.IsWriteable() {
		return curated.Errorf(WriteProtected, (addr+2)&bus.AddressMask)
	}
	hi.Write16(addr, uint16(data>>16))
	lo.Write16((addr+2)&bus.AddressMask, uint16(data))
	return nil
}

func (m *Memory) Read8NoCheck(addr uint32) uint8 {
	addr &= bus.AddressMask
	return m.mustPage(addr).Read8(addr)
}

func (m *Memory) Read16NoCheck(addr uint32) uint16 {
	addr &= bus.AddressMask &^ 1
	return m.mustPage(addr).Read16(addr)
}

func (m *Memory) Read32NoCheck(addr uint32) uint32 {
	return uint32(m.Read16NoCheck(addr))<<16 | uint32(m.Read16NoCheck(addr+2))
}

func (m *Memory) Write8NoCheck(addr uint32, data uint8) {
	addr &= bus.AddressMask
	pg := m.mustPage(addr)
	if !pg.IsWriteable() {
		logger.Logf(logger.Allow, "memory", "dropped write to protected address %#06x", addr)
		return
	}
	pg.Write8(addr, data)
}

func (m *Memory) Write16NoCheck(addr uint32, data uint16) {
	addr &= bus.AddressMask &^ 1
	pg := m.mustPage(addr)
	if !pg.IsWriteable() {
		logger.Logf(logger.Allow, "memory", "dropped write to protected address %#06x", addr)
		return
	}
	pg.Write16(addr, data)
}

func (m *Memory) Write32NoCheck(addr uint32, data uint32) {
	m.Write16NoCheck(addr, uint16(data>>16))
	m.Write16NoCheck(addr+2, uint16(data))
}

func (m *Memory) Peek8(addr uint32) (uint8, error) {
	addr &= bus.AddressMask
	pg, err := m.page(addr)
	if err != nil {
		return 0, err
	}
	return pg.Peek8(addr), nil
}

// Peek16 accepts odd addresses.
func (m *Memory) Peek16(addr uint32) (uint16, error) {
	addr &= bus.AddressMask
	if addr&1 == 0 {
		pg, err := m.page(addr)
		if err != nil {
			return 0, err
		}
		return pg.Peek16(addr), nil
	}

	hi, err := m.Peek8(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.Peek8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Peek32 accepts odd addresses.
func (m *Memory) Peek32(addr uint32) (uint32, error) {
	hi, err := m.Peek16(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.Peek16(addr + 2)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// stream calls f for each page-sized chunk of data, starting at addr. the
// page is resolved again every time a page boundary is crossed. streaming
// stops at the first write protected page.
func (m *Memory) stream(addr uint32, data []uint8, f func(pg Page, addr uint32, chunk []uint8)) error {
	for len(data) > 0 {
		addr &= bus.AddressMask
		pg, err := m.page(addr)
		if err != nil {
			return err
		}
		if !pg.IsWriteable() {
			return curated.Errorf(WriteProtected, addr)
		}

		n := min(int(bus.PageSize-addr&bus.PageMask), len(data))
		f(pg, addr, data[:n])

		addr += uint32(n)
		data = data[n:]
	}
	return nil
}

// BulkWrite copies data into memory without notifying the AccessObserver.
// Data written before a write protected page is reached stays written.
func (m *Memory) BulkWrite(addr uint32, data []uint8) error {
	return m.stream(addr, data, func(pg Page, addr uint32, chunk []uint8) {
		if r, ok := pg.(*RAMPage); ok {
			r.writeBlock(addr, chunk)
			return
		}
		for i, b := range chunk {
			pg.Write8(addr+uint32(i), b)
		}
	})
}

// PokeBytes writes data a byte at a time, so custom chip registers see byte
// writes. Data written before a write protected page is reached stays
// written.
func (m *Memory) PokeBytes(addr uint32, data []uint8) error {
	return m.stream(addr, data, func(pg Page, addr uint32, chunk []uint8) {
		for i, b := range chunk {
			pg.Write8(addr+uint32(i), b)
		}
	})
}

func (m *Memory) Poke16(addr uint32, data uint16) error {
	addr &= bus.AddressMask
	if err := alignment(addr, 2); err != nil {
		return err
	}
	pg, err := m.page(addr)
	if err != nil {
		return err
	}
	if !pg.IsWriteable() {
		return curated.Errorf(WriteProtected, addr)
	}
	pg.Write16(addr, data)
	return nil
}

// Reset resets the MMU. The contents of RAM are lost.
func (m *Memory) Reset() {
	m.mmu.Reset()
}
