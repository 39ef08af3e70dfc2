package amiga

import (
	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/chipset"
	"github.com/nevisdale/amichip/internal/memory"
)

// Region is the kind of hardware responding to an address.
type Region int

const (
	Absent Region = iota
	ChipRAM
	CIA
	Alias
	Custom
	ROM
)

func (r Region) String() string {
	switch r {
	case ChipRAM:
		return "chip RAM"
	case CIA:
		return "CIA"
	case Alias:
		return "custom (alias)"
	case Custom:
		return "custom"
	case ROM:
		return "ROM"
	}
	return "absent"
}

// Classify returns the region of an address. The first matching region wins:
// chip RAM, the custom chip alias, the CIAs, the ROM window and the custom
// chip window.
func (m *Machine) Classify(addr uint32) Region {
	addr &= bus.AddressMask
	switch {
	case addr < m.cfg.ChipRAMSize:
		return ChipRAM
	case addr >= bus.AliasStart && addr <= bus.AliasEnd:
		return Alias
	case addr >= bus.CIAStart && addr <= bus.CIAEnd:
		return CIA
	case addr >= m.cfg.ROMBase && addr < m.cfg.ROMBase+bus.ROMSize:
		if m.rom == nil {
			return Absent
		}
		return ROM
	case addr >= bus.CustomStart && addr <= bus.CustomEnd:
		return Custom
	}
	return Absent
}

// fault is the page fault handler of the MMU. Every page gets its own Page
// value so that page flags are per page, even where pages share the hardware
// behind them.
func (m *Machine) fault(pageNo uint32) memory.Page {
	addr := bus.PageAddress(pageNo)
	switch m.Classify(addr) {
	case ChipRAM:
		return memory.NewRAMPage()
	case Alias, Custom:
		return chipset.NewCustomChipPage(m.Chips)
	case CIA:
		return chipset.NewCIAPage(m.CIAA, m.CIAB)
	case ROM:
		// rebuilt from the image so a reset restores the ROM even if it was
		// not write protected
		pg := m.rom.Page(addr - m.cfg.ROMBase)
		if m.cfg.ROMWriteProtect {
			pg.SetFlags(memory.WriteProtect)
		}
		return pg
	}
	return memory.Absent
}
