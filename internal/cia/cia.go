// Package cia is the register file of a CIA. Only the register decoding is
// emulated: the timers, time of day clock and serial port do not run.
package cia

import (
	"fmt"
	"strings"
)

// Register numbers, selected by address bits 11-8.
const (
	PRA = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TODLO
	TODMID
	TODHI
	unused
	SDR
	ICR
	CRA
	CRB

	NumRegisters
)

var registerNames = [NumRegisters]string{
	"PRA", "PRB", "DDRA", "DDRB", "TALO", "TAHI", "TBLO", "TBHI",
	"TODLO", "TODMID", "TODHI", "-", "SDR", "ICR", "CRA", "CRB",
}

// the CIAs are clocked by the E clock, one tenth of the CPU clock
const eClockDivider = 10

// CIA is one of the two CIA chips.
type CIA struct {
	name   string
	regs   [NumRegisters]uint8
	cycles int
	eclock uint64
}

func NewCIA(name string) *CIA {
	return &CIA{name: name}
}

func (c *CIA) Name() string {
	return c.name
}

// Read returns a register. Bits above 3 of reg are ignored.
func (c *CIA) Read(reg int) uint8 {
	return c.regs[reg&0xf]
}

// Write sets a register. Bits above 3 of reg are ignored.
func (c *CIA) Write(reg int, data uint8) {
	c.regs[reg&0xf] = data
}

// Tick counts CPU cycles into E clock cycles.
func (c *CIA) Tick() {
	c.cycles++
	if c.cycles >= eClockDivider {
		c.cycles = 0
		c.eclock++
	}
}

// EClock returns the number of E clock cycles since the last reset.
func (c *CIA) EClock() uint64 {
	return c.eclock
}

func (c *CIA) Reset() {
	c.regs = [NumRegisters]uint8{}
	c.cycles = 0
	c.eclock = 0
}

func (c *CIA) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	for i, r := range c.regs {
		if i == unused {
			continue
		}
		fmt.Fprintf(&b, " %s=%02x", registerNames[i], r)
	}
	return b.String()
}
