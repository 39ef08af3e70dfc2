package memory

import (
	"maps"
	"slices"

	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/curated"
)

// FaultHandler creates the page for a page number the first time the page
// number is accessed. Returning nil is a programming error.
type FaultHandler func(pageNo uint32) Page

// Device is a piece of hardware driven by the MMU clock.
type Device interface {
	Tick()
	Reset()
}

// MMU is a sparse page table. Pages are created by the fault handler on first
// access and live until Reset().
type MMU struct {
	pages   map[uint32]Page
	fault   FaultHandler
	devices []Device
}

// NewMMU creates a new MMU. The devices are ticked in the order given.
func NewMMU(fault FaultHandler, devices ...Device) *MMU {
	return &MMU{
		pages:   make(map[uint32]Page),
		fault:   fault,
		devices: devices,
	}
}

// Attach adds devices after the ones already attached. Devices that need the
// Memory built on this MMU are attached once they have been created.
func (m *MMU) Attach(devices ...Device) {
	m.devices = append(m.devices, devices...)
}

// GetPage returns the page for the page number, creating it if necessary. The
// same Page is returned for a page number until the MMU is reset.
func (m *MMU) GetPage(pageNo uint32) (Page, error) {
	if pg, ok := m.pages[pageNo]; ok {
		return pg, nil
	}

	pg := m.fault(pageNo)
	if pg == nil {
		return nil, curated.Errorf(PageNotMapped, pageNo)
	}
	m.pages[pageNo] = pg

	return pg, nil
}

// SetPageFlags sets the flags on every page that intersects the address range.
func (m *MMU) SetPageFlags(addr uint32, length uint32, flags PageFlags) error {
	return m.eachPage(addr, length, func(pg Page) {
		pg.SetFlags(flags)
	})
}

// ClearPageFlags clears the flags on every page that intersects the address
// range.
func (m *MMU) ClearPageFlags(addr uint32, length uint32, flags PageFlags) error {
	return m.eachPage(addr, length, func(pg Page) {
		pg.ClearFlags(flags)
	})
}

func (m *MMU) eachPage(addr uint32, length uint32, f func(pg Page)) error {
	if length == 0 {
		return nil
	}
	first := bus.PageNumber(addr)
	last := bus.PageNumber(addr + length - 1)
	for p := first; ; p = (p + 1) & (bus.AddressMask >> bus.PageShift) {
		pg, err := m.GetPage(p)
		if err != nil {
			return err
		}
		f(pg)
		if p == last {
			break
		}
	}
	return nil
}

// MappedPages returns the page numbers currently in the page table, in
// ascending order.
func (m *MMU) MappedPages() []uint32 {
	return slices.Sorted(maps.Keys(m.pages))
}

// Reset drops every page and resets the devices.
func (m *MMU) Reset() {
	clear(m.pages)
	for _, d := range m.devices {
		d.Reset()
	}
}

// Tick advances every device by one cycle. Devices decide for themselves if
// they have work to do.
func (m *MMU) Tick() {
	for _, d := range m.devices {
		d.Tick()
	}
}
