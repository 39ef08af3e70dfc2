package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Standard is the video standard of the machine. It decides the CPU clock and
// the frame rate.
type Standard int

const (
	PAL Standard = iota
	NTSC
)

func (s Standard) String() string {
	switch s {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	}
	return "???"
}

// Set implements flag.Value.
func (s *Standard) Set(v string) error {
	switch strings.ToUpper(v) {
	case "PAL":
		*s = PAL
	case "NTSC":
		*s = NTSC
	default:
		return fmt.Errorf("unknown video standard: %s", v)
	}
	return nil
}

const (
	palClock  = 7093790
	ntscClock = 7159090

	pageSize       = 0x1000
	maxChipRAMSize = 0x200000
	romWindowSize  = 0x80000
)

type Config struct {
	ChipRAMSize     uint32
	ROMBase         uint32
	ROMWriteProtect bool
	Standard        Standard
}

func Default() Config {
	return Config{
		ChipRAMSize:     0x80000,
		ROMBase:         0xF80000,
		ROMWriteProtect: true,
		Standard:        PAL,
	}
}

// CPUClock returns the CPU clock in Hz. One emulated cycle is one CPU clock.
func (c Config) CPUClock() uint32 {
	if c.Standard == NTSC {
		return ntscClock
	}
	return palClock
}

// RefreshRate returns the number of frames per second.
func (c Config) RefreshRate() uint32 {
	if c.Standard == NTSC {
		return 60
	}
	return 50
}

// CyclesPerFrame returns the number of emulated cycles between two vertical
// sync events.
func (c Config) CyclesPerFrame() uint32 {
	return c.CPUClock() / c.RefreshRate()
}

func (c Config) Validate() error {
	if c.ChipRAMSize == 0 || c.ChipRAMSize%pageSize != 0 {
		return fmt.Errorf("chip RAM size must be a non-zero multiple of %#x: %#x", pageSize, c.ChipRAMSize)
	}
	if c.ChipRAMSize > maxChipRAMSize {
		return fmt.Errorf("chip RAM size too large: %#x (max %#x)", c.ChipRAMSize, maxChipRAMSize)
	}
	if c.ROMBase%pageSize != 0 {
		return fmt.Errorf("ROM base must be page aligned: %#x", c.ROMBase)
	}
	if c.ROMBase < c.ChipRAMSize || c.ROMBase+romWindowSize > 0x1000000 {
		return fmt.Errorf("ROM window out of range: %#x", c.ROMBase)
	}
	if c.Standard != PAL && c.Standard != NTSC {
		return fmt.Errorf("unknown video standard: %d", c.Standard)
	}
	return nil
}

// RegisterFlags binds the configuration fields to command line flags. The
// current values of the fields are used as the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("chipram", fmt.Sprintf("size of chip RAM in bytes (default %#x)", c.ChipRAMSize), func(v string) error {
		n, err := ParseNumber(v)
		if err != nil {
			return err
		}
		c.ChipRAMSize = n
		return nil
	})
	fs.Func("rombase", fmt.Sprintf("address of the ROM window (default %#x)", c.ROMBase), func(v string) error {
		n, err := ParseNumber(v)
		if err != nil {
			return err
		}
		c.ROMBase = n
		return nil
	})
	fs.BoolVar(&c.ROMWriteProtect, "romprotect", c.ROMWriteProtect, "write protect the ROM window")
	fs.Var(&c.Standard, "standard", "video standard (PAL or NTSC)")
}

// ParseNumber parses a decimal number or a hexadecimal number with a $ or 0x
// prefix.
func ParseNumber(v string) (uint32, error) {
	s := strings.TrimSpace(v)
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return uint32(n), nil
}
