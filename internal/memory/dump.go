package memory

import (
	"fmt"
	"strings"
)

const (
	hexdumpWidth = 16
	bindumpWidth = 4
)

// Hexdump formats length bytes starting at addr. Memory is read with Peek8
// so nothing in the emulation is disturbed.
//
//	00f80000  11 14 4e f9 00 f8 00 d2  00 00 ff ff 00 28 00 44  |..N..........(.D|
func (m *Memory) Hexdump(addr uint32, length int) (string, error) {
	s := &strings.Builder{}
	ascii := make([]byte, 0, hexdumpWidth)

	for i := 0; i < length; i += hexdumpWidth {
		lineAddr := addr + uint32(i)
		fmt.Fprintf(s, "%08x ", lineAddr)
		ascii = ascii[:0]

		for j := 0; j < hexdumpWidth; j++ {
			if j == hexdumpWidth/2 {
				s.WriteByte(' ')
			}
			if i+j >= length {
				s.WriteString("   ")
				continue
			}
			v, err := m.Peek8(lineAddr + uint32(j))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(s, " %02x", v)
			if v < 0x20 || v > 0x7e {
				v = '.'
			}
			ascii = append(ascii, v)
		}
		fmt.Fprintf(s, "  |%s|\n", ascii)
	}

	return s.String(), nil
}

// Bindump formats length bytes starting at addr as binary, four bytes per
// line. Useful for looking at bitplane data.
//
//	00010000  00000000 11111111 00000000 11111111
func (m *Memory) Bindump(addr uint32, length int) (string, error) {
	s := &strings.Builder{}

	for i := 0; i < length; i += bindumpWidth {
		lineAddr := addr + uint32(i)
		fmt.Fprintf(s, "%08x ", lineAddr)
		for j := 0; j < bindumpWidth && i+j < length; j++ {
			v, err := m.Peek8(lineAddr + uint32(j))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(s, " %08b", v)
		}
		s.WriteByte('\n')
	}

	return s.String(), nil
}
