// Package video holds the display registers, the beam counters and the
// copper.
//
// The copper is a coprocessor with three instructions, each a pair of words:
//
//	MOVE  IR1 bit 0 clear. IR2 is written to the register at IR1 & $1fe
//	WAIT  IR1 bit 0 set, IR2 bit 0 clear. Stalls until the beam reaches a
//	      position and, unless BFD (IR2 bit 15) is set, the blitter is done
//	SKIP  IR1 bit 0 set, IR2 bit 0 set. Skips the next instruction if the
//	      WAIT condition holds
//
// The vertical and horizontal positions of WAIT and SKIP are in bits 15-8 and
// 7-1 of IR1. The enable masks are in bits 14-8 and 7-1 of IR2.
//
// The copper restarts from the active list at every vertical sync.
package video
