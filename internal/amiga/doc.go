// Package amiga assembles the memory and the chips into a machine.
//
// The MMU fault handler classifies each page of the 24 bit address space on
// first access and creates the page for it: chip RAM, the custom chip
// registers (and their alias at $C00000-$D7FFFF), the CIAs or the ROM.
//
// One goroutine runs the machine, normally through Run. Other goroutines, a
// monitor or a viewer, do not touch the machine directly. They queue work with
// PushFunction, or use Inspect to run a function on the machine goroutine and
// wait for it.
package amiga
