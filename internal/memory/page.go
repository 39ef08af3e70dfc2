package memory

// PageFlags are the permission bits of a page.
type PageFlags uint8

const (
	WriteProtect PageFlags = 1 << iota
)

// Page is the unit of address space behaviour. Every address in a page is
// handled by the same Page implementation.
//
// Addresses passed to a page are full bus addresses. Implementations that do
// not care about the page number mask the address themselves.
//
// Read and Write have the side effects of the hardware they represent. Peek
// must not have side effects.
type Page interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Write8(addr uint32, data uint8)
	Write16(addr uint32, data uint16)

	Peek8(addr uint32) uint8
	Peek16(addr uint32) uint16

	Flags() PageFlags
	SetFlags(flags PageFlags)
	ClearFlags(flags PageFlags)
	IsWriteable() bool
}

// Permissions implements the flag methods of the Page interface. Embed it in
// page implementations.
type Permissions struct {
	flags PageFlags
}

func (p *Permissions) Flags() PageFlags {
	return p.flags
}

func (p *Permissions) SetFlags(flags PageFlags) {
	p.flags |= flags
}

func (p *Permissions) ClearFlags(flags PageFlags) {
	p.flags &^= flags
}

func (p *Permissions) IsWriteable() bool {
	return p.flags&WriteProtect == 0
}

type absentPage struct{}

// Absent is the page used for every address that nothing responds to. Reads
// return zero and writes are dropped. It has no state and is shared by every
// unmapped page number.
var Absent Page = absentPage{}

func (absentPage) Read8(uint32) uint8 { return 0 }
func (absentPage) Read16(uint32) uint16 { return 0 }
func (absentPage) Write8(uint32, uint8) {}
func (absentPage) Write16(uint32, uint16) {}
func (absentPage) Peek8(uint32) uint8 { return 0 }
func (absentPage) Peek16(uint32) uint16 { return 0 }
func (absentPage) Flags() PageFlags { return 0 }
func (absentPage) SetFlags(PageFlags) {}
func (absentPage) ClearFlags(PageFlags) {}
func (absentPage) IsWriteable() bool { return true }
