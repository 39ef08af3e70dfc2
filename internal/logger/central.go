// This file is derived from the logger package of Gopher2600
// (https://github.com/jetsetilly/gopher2600), which is free software under
// the GNU General Public License, version 3 or later. This file is
// distributed under the same license.

// Package logger is the central log for the emulator. Entries are made with a
// tag, naming the part of the emulation making the entry, and a detail
// string. Consecutive identical entries are folded into a single entry with a
// repeat count, so a guest program hammering an unhandled register does not
// flood the log.
//
// Every entry is made under a Permission. Logging from code that may run on
// behalf of an inspection tool (eg. a debugger peeking memory) can pass a
// Permission that refuses the request.
package logger

import "io"

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

// Allow indicates that the logging request should be allowed.
var Allow Permission = allow{}

// Deny indicates that the logging request should be dropped.
var Deny Permission = deny{}

// maximum number of entries in the central logger.
const maxCentral = 256

var central = newLogger(maxCentral)

// Log adds an entry to the central logger.
func Log(perm Permission, tag, detail string) {
	if perm == Allow || perm.AllowLogging() {
		central.log(tag, detail)
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag, detail string, args ...any) {
	if perm == Allow || perm.AllowLogging() {
		central.logf(tag, detail, args...)
	}
}

// Clear all entries from central logger.
func Clear() {
	central.clear()
}

// Write contents of central logger to io.Writer. Returns false if there were
// no entries to write.
func Write(output io.Writer) bool {
	return central.write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho prints new log entries to io.Writer as they are made. A nil writer
// stops the echo.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}

// BorrowLog gives the provided function the critical section and access to the
// list of log entries. The slice must not be retained.
func BorrowLog(f func([]Entry)) {
	central.borrowLog(f)
}
