package breakpoints

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/curated"
)

// Error patterns for use with the curated package.
const (
	BreakpointExists = "breakpoints: already exists (%v)"
	NoSuchBreakpoint = "breakpoints: no such breakpoint (%v)"
	BadAccess        = "breakpoints: access must be r, w or rw: %q"
)

// PC is a program counter breakpoint.
type PC uint32

func (pc PC) String() string {
	return fmt.Sprintf("$%06x", uint32(pc))
}

// Snapshot is a consistent view of a Breakpoints set. The slices are shared
// with the set and must not be modified.
type Snapshot struct {
	// ordered by address
	Enabled []PC

	// in the order they were disabled
	Disabled []PC

	// changes whenever the contents change
	Hash uint64
}

func (s *Snapshot) rehash() {
	h := fnv.New64a()
	var b []byte
	for _, pc := range s.Enabled {
		b = binary.BigEndian.AppendUint32(b, uint32(pc))
	}
	b = append(b, 0xff)
	for _, pc := range s.Disabled {
		b = binary.BigEndian.AppendUint32(b, uint32(pc))
	}
	h.Write(b)
	s.Hash = h.Sum64()
}

// Breakpoints is the set of program counter breakpoints. The CPU calls Check
// before executing each instruction. The set may be changed from any
// goroutine, Check never blocks.
type Breakpoints struct {
	set cow[Snapshot]
}

func NewBreakpoints() *Breakpoints {
	b := &Breakpoints{}
	b.Clear()
	return b
}

func (b *Breakpoints) Add(pc PC) error {
	pc &= bus.AddressMask
	return b.set.update(func(old *Snapshot) (*Snapshot, error) {
		i, ok := slices.BinarySearch(old.Enabled, pc)
		if ok || slices.Contains(old.Disabled, pc) {
			return nil, curated.Errorf(BreakpointExists, pc)
		}
		n := &Snapshot{
			Enabled:  slices.Insert(slices.Clone(old.Enabled), i, pc),
			Disabled: old.Disabled,
		}
		n.rehash()
		return n, nil
	})
}

func (b *Breakpoints) Remove(pc PC) error {
	pc &= bus.AddressMask
	return b.set.update(func(old *Snapshot) (*Snapshot, error) {
		n := &Snapshot{Enabled: old.Enabled, Disabled: old.Disabled}
		if i, ok := slices.BinarySearch(old.Enabled, pc); ok {
			n.Enabled = slices.Delete(slices.Clone(old.Enabled), i, i+1)
		} else if i := slices.Index(old.Disabled, pc); i >= 0 {
			n.Disabled = slices.Delete(slices.Clone(old.Disabled), i, i+1)
		} else {
			return nil, curated.Errorf(NoSuchBreakpoint, pc)
		}
		n.rehash()
		return n, nil
	})
}

func (b *Breakpoints) Enable(pc PC) error {
	pc &= bus.AddressMask
	return b.set.update(func(old *Snapshot) (*Snapshot, error) {
		i, ok := slices.BinarySearch(old.Enabled, pc)
		if ok {
			return old, nil
		}
		d := slices.Index(old.Disabled, pc)
		if d < 0 {
			return nil, curated.Errorf(NoSuchBreakpoint, pc)
		}
		n := &Snapshot{
			Enabled:  slices.Insert(slices.Clone(old.Enabled), i, pc),
			Disabled: slices.Delete(slices.Clone(old.Disabled), d, d+1),
		}
		n.rehash()
		return n, nil
	})
}

func (b *Breakpoints) Disable(pc PC) error {
	pc &= bus.AddressMask
	return b.set.update(func(old *Snapshot) (*Snapshot, error) {
		if slices.Contains(old.Disabled, pc) {
			return old, nil
		}
		i, ok := slices.BinarySearch(old.Enabled, pc)
		if !ok {
			return nil, curated.Errorf(NoSuchBreakpoint, pc)
		}
		n := &Snapshot{
			Enabled:  slices.Delete(slices.Clone(old.Enabled), i, i+1),
			Disabled: append(slices.Clone(old.Disabled), pc),
		}
		n.rehash()
		return n, nil
	})
}

func (b *Breakpoints) Clear() {
	_ = b.set.update(func(*Snapshot) (*Snapshot, error) {
		n := &Snapshot{}
		n.rehash()
		return n, nil
	})
}

// Check returns true if there is an enabled breakpoint at pc.
func (b *Breakpoints) Check(pc uint32) bool {
	s := b.set.load()
	if len(s.Enabled) == 0 {
		return false
	}
	_, ok := slices.BinarySearch(s.Enabled, PC(pc&bus.AddressMask))
	return ok
}

func (b *Breakpoints) Snapshot() Snapshot {
	return *b.set.load()
}

func (b *Breakpoints) Hash() uint64 {
	return b.set.load().Hash
}
