package bus

const (
	// Detailed Memory Map (24 bit address bus):
	//
	// $000000-chip RAM size: Chip RAM
	//   RAM shared between the CPU and the custom chip DMA channels.
	//   256KB to 2MB depending on the machine.
	//
	// $BF0000-$BFFFFF: CIA registers
	//   Two CIAs share the window. A13 selects the chip:
	//   $BFExxx (A13 set) is CIA-A, $BFDxxx (A13 clear) is CIA-B.
	//   A11-A8 select one of the 16 registers of the chip.
	//
	// $C00000-$D7FFFF: Incomplete address decoding
	//   Without slow RAM fitted these addresses reach the custom chips.
	//   The ROM relies on this when it sizes memory so it is emulated.
	//
	// $DF0000-$DFFFFF: Custom chip registers
	//   $DFF000-$DFF1FF, mirrored across the window.
	//
	// $F80000-$FFFFFF: Kickstart ROM (512KB)
	//
	// Everything else is unmapped: reads return 0, writes are dropped.
	AddressMask = 0xFFFFFF

	PageShift = 12
	PageSize  = 1 << PageShift
	PageMask  = PageSize - 1

	CIAStart = 0xBF0000
	CIAEnd   = 0xBFFFFF

	AliasStart = 0xC00000
	AliasEnd   = 0xD7FFFF

	CustomStart = 0xDF0000
	CustomEnd   = 0xDFFFFF

	// CustomRegMask reduces any address in the custom window to a register
	// offset.
	CustomRegMask = 0x1FF

	ROMSize = 0x80000
)

// Custom chip register offsets.
const (
	DMACONR = 0x002
	VPOSR   = 0x004
	VHPOSR  = 0x006
	INTENAR = 0x01C
	INTREQR = 0x01E
	COPCON  = 0x02E

	BLTCON0  = 0x040
	BLTCON1  = 0x042
	BLTAFWM  = 0x044
	BLTALWM  = 0x046
	BLTCPTH  = 0x048
	BLTCPTL  = 0x04A
	BLTBPTH  = 0x04C
	BLTBPTL  = 0x04E
	BLTAPTH  = 0x050
	BLTAPTL  = 0x052
	BLTDPTH  = 0x054
	BLTDPTL  = 0x056
	BLTSIZE  = 0x058
	BLTCON0L = 0x05A
	BLTCMOD  = 0x060
	BLTBMOD  = 0x062
	BLTAMOD  = 0x064
	BLTDMOD  = 0x066
	BLTCDAT  = 0x070
	BLTBDAT  = 0x072
	BLTADAT  = 0x074

	COP1LCH = 0x080
	COP1LCL = 0x082
	COP2LCH = 0x084
	COP2LCL = 0x086
	COPJMP1 = 0x088
	COPJMP2 = 0x08A
	COPINS  = 0x08C
	DIWSTRT = 0x08E
	DIWSTOP = 0x090
	DDFSTRT = 0x092
	DDFSTOP = 0x094
	DMACON  = 0x096
	INTENA  = 0x09A
	INTREQ  = 0x09C

	BPL1PTH = 0x0E0
	BPLCON0 = 0x100
	BPLCON1 = 0x102
	BPLCON2 = 0x104
	BPLCON3 = 0x106
	BPL1MOD = 0x108
	BPL2MOD = 0x10A
	BPL1DAT = 0x110
	SPR0PTH = 0x120
	SPR0POS = 0x140
	COLOR00 = 0x180
	HTOTAL  = 0x1C0
	DIWHIGH = 0x1E4

	VideoFirst = BPL1PTH
	VideoLast  = DIWHIGH + 1
)

// PageNumber returns the page holding the address.
func PageNumber(addr uint32) uint32 {
	return (addr & AddressMask) >> PageShift
}

// PageAddress returns the first address of a page.
func PageAddress(pageNo uint32) uint32 {
	return pageNo << PageShift
}
