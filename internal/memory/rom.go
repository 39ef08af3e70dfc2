package memory

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/logger"
)

const (
	// first long word of a Kickstart ROM. the low word is a JMP instruction
	romMagic256K = 0x11114ef9
	romMagic512K = 0x11144ef9

	romSize256K = 0x40000
	romSize512K = 0x80000
)

// ROM is a Kickstart image. A 256K image is mirrored to fill the 512K ROM
// window.
type ROM struct {
	data []uint8
}

// LoadROM reads a ROM image from a file.
func LoadROM(path string) (*ROM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the file: %s", err)
	}
	defer file.Close()
	return ParseROM(file)
}

// ParseROM reads a ROM image. Supported sizes are 256K and 512K.
func ParseROM(r io.Reader) (*ROM, error) {
	data, err := io.ReadAll(io.LimitReader(r, romSize512K+1))
	if err != nil {
		return nil, fmt.Errorf("couldn't read ROM: %s", err)
	}
	if len(data) != romSize256K && len(data) != romSize512K {
		return nil, fmt.Errorf("unsupported ROM size: %d bytes", len(data))
	}

	var header struct {
		Magic    uint32
		Entry    uint32
		Reserved uint16
		Version  uint16
		Revision uint16
	}
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("couldn't read the header: %s", err)
	}
	switch header.Magic {
	case romMagic256K, romMagic512K:
		logger.Logf(logger.Allow, "rom", "kickstart %d.%d, entry %#06x", header.Version, header.Revision, header.Entry)
	default:
		logger.Logf(logger.Allow, "rom", "unrecognised ROM header %#08x", header.Magic)
	}

	if len(data) == romSize256K {
		data = append(data, data...)
	}

	return &ROM{data: data}, nil
}

// NewROM creates a ROM from data. Used for tests and for images that have
// been decoded elsewhere. data is mirrored to fill the ROM window and must be
// a power of two in size.
func NewROM(data []uint8) (*ROM, error) {
	if len(data) == 0 || len(data) > bus.ROMSize || len(data)&(len(data)-1) != 0 {
		return nil, fmt.Errorf("unsupported ROM size: %d bytes", len(data))
	}
	r := &ROM{data: make([]uint8, bus.ROMSize)}
	for i := 0; i < bus.ROMSize; i += len(data) {
		copy(r.data[i:], data)
	}
	return r, nil
}

// Page returns a new RAMPage holding the page of the ROM at offset. The offset
// wraps at the size of the ROM window.
func (r *ROM) Page(offset uint32) *RAMPage {
	offset &= (bus.ROMSize - 1) &^ bus.PageMask
	return NewRAMPageFrom(r.data[offset : offset+bus.PageSize])
}

func (r *ROM) Size() int {
	return len(r.data)
}
