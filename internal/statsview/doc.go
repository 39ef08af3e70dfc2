// Package statsview serves live charts of the Go runtime (heap, goroutines,
// garbage collection) in a browser, for watching the emulator under load.
package statsview
