package breakpoints

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/curated"
)

// Access is the kind of memory access a breakpoint triggers on.
type Access int

const (
	Read Access = 1 << iota
	Write

	ReadWrite = Read | Write
)

func (a Access) String() string {
	switch a {
	case Read:
		return "r"
	case Write:
		return "w"
	case ReadWrite:
		return "rw"
	}
	return "-"
}

// ParseAccess converts "r", "w" or "rw" to an Access.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(s) {
	case "r":
		return Read, nil
	case "w":
		return Write, nil
	case "rw", "wr":
		return ReadWrite, nil
	}
	return 0, curated.Errorf(BadAccess, s)
}

// MemoryBreakpoint covers Size bytes from Addr. A Size of zero is treated as
// one byte.
type MemoryBreakpoint struct {
	Addr   uint32
	Size   uint32
	Access Access
}

func (bp MemoryBreakpoint) normalise() MemoryBreakpoint {
	bp.Addr &= bus.AddressMask
	if bp.Size == 0 {
		bp.Size = 1
	}
	return bp
}

// overlaps returns true if any of the size bytes from addr is covered.
func (bp MemoryBreakpoint) overlaps(addr uint32, size uint32) bool {
	return addr < bp.Addr+bp.Size && bp.Addr < addr+size
}

func (bp MemoryBreakpoint) String() string {
	if bp.Size > 1 {
		return fmt.Sprintf("$%06x-$%06x %s", bp.Addr, bp.Addr+bp.Size-1, bp.Access)
	}
	return fmt.Sprintf("$%06x %s", bp.Addr, bp.Access)
}

func compareMemory(a, b MemoryBreakpoint) int {
	if c := cmp.Compare(a.Addr, b.Addr); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}
	return cmp.Compare(a.Access, b.Access)
}

// MemorySnapshot is a consistent view of a MemoryBreakpoints set. The slices
// are shared with the set and must not be modified.
type MemorySnapshot struct {
	// ordered by address
	Enabled []MemoryBreakpoint

	// in the order they were disabled
	Disabled []MemoryBreakpoint

	// changes whenever the contents change
	Hash uint64
}

func (s *MemorySnapshot) find(bp MemoryBreakpoint) (enabled int, disabled int) {
	enabled, disabled = -1, -1
	if i, ok := slices.BinarySearchFunc(s.Enabled, bp, compareMemory); ok {
		enabled = i
	}
	disabled = slices.Index(s.Disabled, bp)
	return enabled, disabled
}

func (s *MemorySnapshot) rehash() {
	h := fnv.New64a()
	var b []byte
	for _, bp := range s.Enabled {
		b = binary.BigEndian.AppendUint32(b[:0], bp.Addr)
		b = binary.BigEndian.AppendUint32(b, bp.Size)
		b = append(b, byte(bp.Access))
		h.Write(b)
	}
	h.Write([]byte{0xff})
	for _, bp := range s.Disabled {
		b = binary.BigEndian.AppendUint32(b[:0], bp.Addr)
		b = binary.BigEndian.AppendUint32(b, bp.Size)
		b = append(b, byte(bp.Access))
		h.Write(b)
	}
	s.Hash = h.Sum64()
}

// Hit describes the access that triggered a breakpoint.
type Hit struct {
	Breakpoint MemoryBreakpoint
	Addr       uint32
	Size       int
	Write      bool
	Data       uint32
}

func (h Hit) String() string {
	if h.Write {
		return fmt.Sprintf("break %s: write of %#x to $%06x (%d bytes)", h.Breakpoint, h.Data, h.Addr, h.Size)
	}
	return fmt.Sprintf("break %s: read of $%06x (%d bytes)", h.Breakpoint, h.Addr, h.Size)
}

// MemoryBreakpoints is the set of memory breakpoints. It implements the
// memory access observer.
//
// The set may be changed from any goroutine. CheckRead and CheckWrite never
// block: they work on whatever snapshot was current when they were called.
type MemoryBreakpoints struct {
	set cow[MemorySnapshot]

	// the most recent hit. kept for highlighting
	last atomic.Pointer[Hit]

	// a hit not yet collected by TakeHit
	pending atomic.Pointer[Hit]
}

func NewMemoryBreakpoints() *MemoryBreakpoints {
	m := &MemoryBreakpoints{}
	m.Clear()
	return m
}

// Add adds an enabled breakpoint. It is an error to add a breakpoint that is
// already in the set, enabled or not.
func (m *MemoryBreakpoints) Add(bp MemoryBreakpoint) error {
	bp = bp.normalise()
	return m.set.update(func(old *MemorySnapshot) (*MemorySnapshot, error) {
		e, d := old.find(bp)
		if e >= 0 || d >= 0 {
			return nil, curated.Errorf(BreakpointExists, bp)
		}
		i, _ := slices.BinarySearchFunc(old.Enabled, bp, compareMemory)
		n := &MemorySnapshot{
			Enabled:  slices.Insert(slices.Clone(old.Enabled), i, bp),
			Disabled: old.Disabled,
		}
		n.rehash()
		return n, nil
	})
}

// Remove removes a breakpoint, enabled or not.
func (m *MemoryBreakpoints) Remove(bp MemoryBreakpoint) error {
	bp = bp.normalise()
	return m.set.update(func(old *MemorySnapshot) (*MemorySnapshot, error) {
		e, d := old.find(bp)
		n := &MemorySnapshot{Enabled: old.Enabled, Disabled: old.Disabled}
		switch {
		case e >= 0:
			n.Enabled = slices.Delete(slices.Clone(old.Enabled), e, e+1)
		case d >= 0:
			n.Disabled = slices.Delete(slices.Clone(old.Disabled), d, d+1)
		default:
			return nil, curated.Errorf(NoSuchBreakpoint, bp)
		}
		n.rehash()
		return n, nil
	})
}

// Enable moves a disabled breakpoint back into the enabled set. Enabling a
// breakpoint that is already enabled does nothing.
func (m *MemoryBreakpoints) Enable(bp MemoryBreakpoint) error {
	bp = bp.normalise()
	return m.set.update(func(old *MemorySnapshot) (*MemorySnapshot, error) {
		e, d := old.find(bp)
		if e >= 0 {
			return old, nil
		}
		if d < 0 {
			return nil, curated.Errorf(NoSuchBreakpoint, bp)
		}
		i, _ := slices.BinarySearchFunc(old.Enabled, bp, compareMemory)
		n := &MemorySnapshot{
			Enabled:  slices.Insert(slices.Clone(old.Enabled), i, bp),
			Disabled: slices.Delete(slices.Clone(old.Disabled), d, d+1),
		}
		n.rehash()
		return n, nil
	})
}

// Disable keeps a breakpoint in the set without it triggering.
func (m *MemoryBreakpoints) Disable(bp MemoryBreakpoint) error {
	bp = bp.normalise()
	return m.set.update(func(old *MemorySnapshot) (*MemorySnapshot, error) {
		e, d := old.find(bp)
		if d >= 0 {
			return old, nil
		}
		if e < 0 {
			return nil, curated.Errorf(NoSuchBreakpoint, bp)
		}
		n := &MemorySnapshot{
			Enabled:  slices.Delete(slices.Clone(old.Enabled), e, e+1),
			Disabled: append(slices.Clone(old.Disabled), bp),
		}
		n.rehash()
		return n, nil
	})
}

// Clear removes every breakpoint and forgets the last hit.
func (m *MemoryBreakpoints) Clear() {
	_ = m.set.update(func(*MemorySnapshot) (*MemorySnapshot, error) {
		n := &MemorySnapshot{}
		n.rehash()
		return n, nil
	})
	m.last.Store(nil)
	m.pending.Store(nil)
}

// Snapshot returns the current contents of the set.
func (m *MemoryBreakpoints) Snapshot() MemorySnapshot {
	return *m.set.load()
}

// Hash changes whenever the contents of the set change.
func (m *MemoryBreakpoints) Hash() uint64 {
	return m.set.load().Hash
}

// LastHit returns the most recent hit.
func (m *MemoryBreakpoints) LastHit() (Hit, bool) {
	if h := m.last.Load(); h != nil {
		return *h, true
	}
	return Hit{}, false
}

// TakeHit returns the hit since the previous call, if there was one.
func (m *MemoryBreakpoints) TakeHit() (Hit, bool) {
	if h := m.pending.Swap(nil); h != nil {
		return *h, true
	}
	return Hit{}, false
}

func (m *MemoryBreakpoints) CheckRead(addr uint32, size int) {
	m.check(addr, size, Read, 0)
}

func (m *MemoryBreakpoints) CheckWrite(addr uint32, size int, data uint32) {
	m.check(addr, size, Write, data)
}

func (m *MemoryBreakpoints) check(addr uint32, size int, access Access, data uint32) {
	s := m.set.load()
	if len(s.Enabled) == 0 {
		return
	}

	addr &= bus.AddressMask
	end := addr + uint32(size)

	// breakpoints from i onwards start after the access
	i := sort.Search(len(s.Enabled), func(i int) bool {
		return s.Enabled[i].Addr >= end
	})
	for j := i - 1; j >= 0; j-- {
		bp := s.Enabled[j]
		if bp.Access&access == 0 || !bp.overlaps(addr, uint32(size)) {
			continue
		}
		h := &Hit{
			Breakpoint: bp,
			Addr:       addr,
			Size:       size,
			Write:      access == Write,
			Data:       data,
		}
		m.last.Store(h)
		m.pending.Store(h)
		return
	}
}
