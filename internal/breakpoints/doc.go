// Package breakpoints implements program counter and memory breakpoints.
//
// Both sets are copy-on-write. A change builds a new snapshot and publishes
// it atomically, so the emulation goroutine checking accesses never waits for
// a debugger goroutine editing the set, and a debugger can take a consistent
// Snapshot at any time. The Hash of a snapshot changes whenever its contents
// change, which lets a viewer redraw its list only when it needs to.
//
// MemoryBreakpoints implements the memory access observer. A hit is recorded
// and collected by the run loop with TakeHit. The checked access itself
// completes normally.
package breakpoints
