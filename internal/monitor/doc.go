// Package monitor is a command line machine monitor in the tradition of the
// ROM monitors of 8 and 16 bit machines. It reads commands from a terminal,
// with line editing provided by golang.org/x/term.
//
// Numbers are decimal unless prefixed with $ or 0x. Breakpoints are referred
// to by their number in the list printed by the list command. Type help for
// the commands.
package monitor
