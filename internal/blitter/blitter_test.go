package blitter

import (
	"testing"

	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/dma"
	"github.com/nevisdale/amichip/internal/irq"
	"github.com/nevisdale/amichip/internal/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRig struct {
	mem *memory.Memory
	dma *dma.Controller
	irq *irq.Controller
	blt *Blitter
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	r := &testRig{
		mem: memory.NewMemory(memory.NewMMU(func(uint32) memory.Page {
			return memory.NewRAMPage()
		})),
		dma: dma.NewController(),
		irq: irq.NewController(),
	}
	r.blt = NewBlitter(r.mem, r.dma, r.irq)
	r.dma.Write(dma.SETCLR | dma.DMAEN | dma.BLTEN)
	return r
}

func (r *testRig) words(addr uint32, words ...uint16) {
	for i, w := range words {
		r.mem.Write16NoCheck(addr+uint32(2*i), w)
	}
}

func (r *testRig) read(addr uint32, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = r.mem.Read16NoCheck(addr + uint32(2*i))
	}
	return out
}

func (r *testRig) pointer(reg uint32, addr uint32) {
	r.blt.Write16(reg, uint16(addr>>16))
	r.blt.Write16(reg+2, uint16(addr))
}

func (r *testRig) ticks(n int) {
	for i := 0; i < n; i++ {
		r.blt.Tick()
	}
}

func size(width, height int) uint16 {
	return uint16(height&0x3ff)<<6 | uint16(width&0x3f)
}

func Test_Reset(t *testing.T) {
	r := newTestRig(t)
	assert.True(t, r.blt.Done())
	assert.False(t, r.blt.Active())
	assert.True(t, r.blt.Zero())
}

func Test_SizeQuirk(t *testing.T) {
	type testArgs struct {
		size           uint16
		expectedWidth  int
		expectedHeight int
	}

	testDo := func(t *testing.T, args testArgs) {
		r := newTestRig(t)
		r.blt.Write16(bus.BLTSIZE, args.size)
		s := r.blt.State()
		assert.True(t, s.Active)
		assert.False(t, s.Done)
		assert.Equal(t, args.expectedWidth, s.Width, "width")
		assert.Equal(t, args.expectedHeight, s.RowsLeft, "height")
		assert.Equal(t, args.expectedWidth, s.WordsLeft, "words left")
	}

	t.Run("zero means maximum", func(t *testing.T) {
		testDo(t, testArgs{size: 0, expectedWidth: 64, expectedHeight: 1024})
	})
	t.Run("zero width", func(t *testing.T) {
		testDo(t, testArgs{size: size(0, 5), expectedWidth: 64, expectedHeight: 5})
	})
	t.Run("zero height", func(t *testing.T) {
		testDo(t, testArgs{size: size(7, 0), expectedWidth: 7, expectedHeight: 1024})
	})
	t.Run("largest explicit", func(t *testing.T) {
		testDo(t, testArgs{size: size(63, 1023), expectedWidth: 63, expectedHeight: 1023})
	})
}

// a 3 word by 2 row copy from A to D takes one tick per word
func Test_IdentityCopy(t *testing.T) {
	r := newTestRig(t)
	src := []uint16{0x0102, 0x0304, 0x0506, 0x0708, 0x090a, 0x0b0c}
	r.words(0x1000, src...)

	r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
	r.blt.Write16(bus.BLTCON1, 0)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0xffff)
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(3, 2))

	r.ticks(5)
	assert.False(t, r.blt.Done())
	assert.True(t, r.blt.Active())
	assert.Zero(t, r.irq.Request()&irq.BLIT)

	r.ticks(1)
	assert.True(t, r.blt.Done())
	assert.False(t, r.blt.Active())
	assert.Equal(t, src, r.read(0x2000, 6))
	assert.False(t, r.blt.Zero())
	assert.Equal(t, uint16(irq.BLIT), r.irq.Request()&irq.BLIT)

	t.Run("pointers written back", func(t *testing.T) {
		s := r.blt.State()
		assert.Equal(t, uint32(0x100c), s.Pointers[chanA])
		assert.Equal(t, uint32(0x200c), s.Pointers[chanD])
		assert.Equal(t, uint16(0x100c), r.blt.Read16(bus.BLTAPTL))
	})

	t.Run("further ticks do nothing", func(t *testing.T) {
		r.words(0x200c, 0xeeee)
		r.ticks(10)
		assert.Equal(t, uint16(0xeeee), r.read(0x200c, 1)[0])
	})
}

func Test_ZeroDetect(t *testing.T) {
	type testArgs struct {
		src      []uint16
		expected bool
	}

	testDo := func(t *testing.T, args testArgs) {
		r := newTestRig(t)
		r.words(0x1000, args.src...)
		r.blt.Write16(bus.BLTCON0, useA|0xf0)
		r.blt.Write16(bus.BLTAFWM, 0xffff)
		r.blt.Write16(bus.BLTALWM, 0xffff)
		r.pointer(bus.BLTAPTH, 0x1000)
		r.pointer(bus.BLTDPTH, 0x2000)
		r.words(0x2000, 0x5555, 0x5555, 0x5555, 0x5555)
		r.blt.Write16(bus.BLTSIZE, size(len(args.src), 1))
		r.ticks(len(args.src))

		require.True(t, r.blt.Done())
		assert.Equal(t, args.expected, r.blt.Zero())
		// D is not enabled so nothing is written
		assert.Equal(t, []uint16{0x5555, 0x5555, 0x5555, 0x5555}, r.read(0x2000, 4))
	}

	t.Run("all zero", func(t *testing.T) {
		testDo(t, testArgs{src: []uint16{0, 0, 0, 0}, expected: true})
	})
	t.Run("one bit", func(t *testing.T) {
		testDo(t, testArgs{src: []uint16{0, 0, 0x0100, 0}, expected: false})
	})
}

func Test_DMAGate(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 0x1234)
	r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0xffff)
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2000)

	r.dma.Write(dma.BLTEN)
	r.blt.Write16(bus.BLTSIZE, size(1, 1))
	r.ticks(10)
	assert.True(t, r.blt.Active())
	assert.Equal(t, uint16(0), r.read(0x2000, 1)[0])

	r.dma.Write(dma.SETCLR | dma.BLTEN)
	r.dma.Write(dma.DMAEN)
	r.ticks(10)
	assert.True(t, r.blt.Active())

	// the job resumes where it was left
	r.dma.Write(dma.SETCLR | dma.DMAEN)
	r.ticks(1)
	assert.True(t, r.blt.Done())
	assert.Equal(t, uint16(0x1234), r.read(0x2000, 1)[0])
}

func Test_LineMode(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 0xffff)
	r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
	r.blt.Write16(bus.BLTCON1, lineMode)
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(1, 1))

	r.ticks(100)
	assert.False(t, r.blt.Done())
	assert.True(t, r.blt.Active())
	assert.Equal(t, uint16(0), r.read(0x2000, 1)[0])

	t.Run("new size restarts", func(t *testing.T) {
		r.blt.Write16(bus.BLTCON1, 0)
		r.blt.Write16(bus.BLTAFWM, 0xffff)
		r.blt.Write16(bus.BLTALWM, 0xffff)
		r.blt.Write16(bus.BLTSIZE, size(1, 1))
		r.ticks(1)
		assert.True(t, r.blt.Done())
		assert.Equal(t, uint16(0xffff), r.read(0x2000, 1)[0])
	})
}

func Test_Restart(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 1, 2, 3, 4)
	r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0xffff)
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(4, 1))
	r.ticks(2)

	r.pointer(bus.BLTDPTH, 0x3000)
	r.blt.Write16(bus.BLTSIZE, size(4, 1))
	s := r.blt.State()
	assert.Equal(t, 4, s.WordsLeft)
	assert.Equal(t, uint32(0x1000), s.Pointers[chanA])

	r.ticks(4)
	assert.True(t, r.blt.Done())
	assert.Equal(t, []uint16{1, 2, 3, 4}, r.read(0x3000, 4))
	assert.Equal(t, []uint16{1, 2, 0, 0}, r.read(0x2000, 4))
}

func Test_Masks(t *testing.T) {
	type testArgs struct {
		width    int
		afwm     uint16
		alwm     uint16
		expected []uint16
	}

	testDo := func(t *testing.T, args testArgs) {
		r := newTestRig(t)
		r.words(0x1000, 0xffff, 0xffff, 0xffff)
		r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
		r.blt.Write16(bus.BLTAFWM, args.afwm)
		r.blt.Write16(bus.BLTALWM, args.alwm)
		r.pointer(bus.BLTAPTH, 0x1000)
		r.pointer(bus.BLTDPTH, 0x2000)
		r.blt.Write16(bus.BLTSIZE, size(args.width, 1))
		r.ticks(args.width)
		assert.Equal(t, args.expected, r.read(0x2000, args.width))
	}

	t.Run("first and last", func(t *testing.T) {
		testDo(t, testArgs{width: 3, afwm: 0xff00, alwm: 0x00ff, expected: []uint16{0xff00, 0xffff, 0x00ff}})
	})
	t.Run("single word gets both", func(t *testing.T) {
		testDo(t, testArgs{width: 1, afwm: 0x0ff0, alwm: 0x3c3c, expected: []uint16{0x0c30}})
	})
}

func Test_Shift(t *testing.T) {
	type testArgs struct {
		descending bool
		shift      uint16
		expected   []uint16
	}

	testDo := func(t *testing.T, args testArgs) {
		r := newTestRig(t)
		r.words(0x1000, 0x1234, 0x5678, 0x9abc)
		r.blt.Write16(bus.BLTCON0, args.shift<<12|useA|useD|0xf0)
		r.blt.Write16(bus.BLTAFWM, 0xffff)
		r.blt.Write16(bus.BLTALWM, 0xffff)
		if args.descending {
			r.blt.Write16(bus.BLTCON1, descMode)
			r.pointer(bus.BLTAPTH, 0x1004)
			r.pointer(bus.BLTDPTH, 0x2004)
		} else {
			r.pointer(bus.BLTAPTH, 0x1000)
			r.pointer(bus.BLTDPTH, 0x2000)
		}
		r.blt.Write16(bus.BLTSIZE, size(3, 1))
		r.ticks(3)
		require.True(t, r.blt.Done())
		assert.Equal(t, args.expected, r.read(0x2000, 3))
	}

	t.Run("ascending no shift", func(t *testing.T) {
		testDo(t, testArgs{expected: []uint16{0x1234, 0x5678, 0x9abc}})
	})
	t.Run("ascending shifts right", func(t *testing.T) {
		testDo(t, testArgs{shift: 4, expected: []uint16{0x0123, 0x4567, 0x89ab}})
	})
	t.Run("descending no shift", func(t *testing.T) {
		testDo(t, testArgs{descending: true, expected: []uint16{0x1234, 0x5678, 0x9abc}})
	})
	t.Run("descending shifts left", func(t *testing.T) {
		testDo(t, testArgs{descending: true, shift: 4, expected: []uint16{0x2345, 0x6789, 0xabc0}})
	})
	t.Run("ascending by 15", func(t *testing.T) {
		testDo(t, testArgs{shift: 15, expected: []uint16{0x0000, 0x2468, 0xacf1}})
	})
}

func Test_ShiftB(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 0xff00, 0x00ff)
	r.blt.Write16(bus.BLTCON0, useB|useD|0xcc)
	r.blt.Write16(bus.BLTCON1, 8<<12)
	r.pointer(bus.BLTBPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(2, 1))
	r.ticks(2)
	assert.Equal(t, []uint16{0x00ff, 0x0000}, r.read(0x2000, 2))
}

func Test_Modulo(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 0x1111, 0x2222, 0x3333, 0x4444)
	r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0xffff)
	r.blt.Write16(bus.BLTAMOD, 2)
	r.blt.Write16(bus.BLTDMOD, 0xfffc) // -4
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTDPTH, 0x2002)
	r.blt.Write16(bus.BLTSIZE, size(1, 2))
	r.ticks(2)

	require.True(t, r.blt.Done())
	// row 2 of A starts one word later, row 2 of D one word earlier
	assert.Equal(t, []uint16{0x1111, 0x3333}, []uint16{r.read(0x2002, 1)[0], r.read(0x2000, 1)[0]})
	s := r.blt.State()
	assert.Equal(t, uint32(0x1008), s.Pointers[chanA])
	assert.Equal(t, uint32(0x1ffe), s.Pointers[chanD])
}

func Test_ThreeSources(t *testing.T) {
	r := newTestRig(t)
	r.words(0x1000, 0xff00) // A: mask
	r.words(0x1100, 0x1234) // B: image
	r.words(0x1200, 0xabcd) // C: background

	// cookie cut: D = A&B | !A&C
	r.blt.Write16(bus.BLTCON0, useA|useB|useC|useD|0xca)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0xffff)
	r.pointer(bus.BLTAPTH, 0x1000)
	r.pointer(bus.BLTBPTH, 0x1100)
	r.pointer(bus.BLTCPTH, 0x1200)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(1, 1))
	r.ticks(1)

	assert.Equal(t, uint16(0x12cd), r.read(0x2000, 1)[0])
	assert.Equal(t, uint16(0xabcd), r.blt.Read16(bus.BLTCDAT))
}

func Test_DataLatch(t *testing.T) {
	r := newTestRig(t)
	r.blt.Write16(bus.BLTCON0, useD|0xf0)
	r.blt.Write16(bus.BLTAFWM, 0xffff)
	r.blt.Write16(bus.BLTALWM, 0x0fff)
	r.blt.Write16(bus.BLTADAT, 0xaaaa)
	r.pointer(bus.BLTDPTH, 0x2000)
	r.blt.Write16(bus.BLTSIZE, size(3, 1))
	r.ticks(3)
	assert.Equal(t, []uint16{0xaaaa, 0xaaaa, 0x0aaa}, r.read(0x2000, 3))
}

func Test_Minterm(t *testing.T) {
	const a, b, c = 0xf0f0, 0xcccc, 0xaaaa

	for lf, expected := range map[uint8]uint16{
		0x00: 0x0000,
		0xff: 0xffff,
		0xf0: a,
		0x0f: ^uint16(a),
		0xcc: b,
		0xaa: c,
		0x80: a & b & c,
		0xca: a&b | ^uint16(a)&c,
		0x3c: a ^ b,
	} {
		assert.Equal(t, expected, minterm(lf, a, b, c), "minterm %#02x", lf)
	}
}

func Test_Fill(t *testing.T) {
	type testArgs struct {
		con1     uint16
		src      []uint16
		expected []uint16
	}

	testDo := func(t *testing.T, args testArgs) {
		r := newTestRig(t)
		r.words(0x1000, args.src...)
		r.blt.Write16(bus.BLTCON0, useA|useD|0xf0)
		r.blt.Write16(bus.BLTCON1, args.con1)
		r.blt.Write16(bus.BLTAFWM, 0xffff)
		r.blt.Write16(bus.BLTALWM, 0xffff)
		r.pointer(bus.BLTAPTH, 0x1000)
		r.pointer(bus.BLTDPTH, 0x2000)
		r.blt.Write16(bus.BLTSIZE, size(1, len(args.src)))
		r.ticks(len(args.src))
		assert.Equal(t, args.expected, r.read(0x2000, len(args.src)))
	}

	t.Run("inclusive", func(t *testing.T) {
		testDo(t, testArgs{con1: fillIncl, src: []uint16{0x0810}, expected: []uint16{0x0ff0}})
	})
	t.Run("exclusive", func(t *testing.T) {
		testDo(t, testArgs{con1: fillExcl, src: []uint16{0x0810}, expected: []uint16{0x07f0}})
	})
	t.Run("carry in", func(t *testing.T) {
		testDo(t, testArgs{con1: fillIncl | fillCarryI, src: []uint16{0x0010}, expected: []uint16{0x001f}})
	})
	t.Run("carry reloads every row", func(t *testing.T) {
		testDo(t, testArgs{con1: fillIncl, src: []uint16{0x0100, 0x0000}, expected: []uint16{0xff00, 0x0000}})
	})
}

func Test_Registers(t *testing.T) {
	r := newTestRig(t)

	r.blt.Write8(bus.BLTCON0, 0x09)
	r.blt.Write8(bus.BLTCON0+1, 0xf0)
	assert.Equal(t, uint16(0x09f0), r.blt.Read16(bus.BLTCON0))

	r.blt.Write16(bus.BLTCON0L, 0x12ca)
	assert.Equal(t, uint16(0x09ca), r.blt.Read16(bus.BLTCON0))
	r.blt.Write8(bus.BLTCON0L+1, 0x3c)
	assert.Equal(t, uint8(0x3c), r.blt.Read8(bus.BLTCON0+1))

	r.blt.Write8(bus.BLTDPTL+1, 0x44)
	r.blt.Write8(bus.BLTDPTH+1, 0x07)
	assert.Equal(t, uint16(0x0007), r.blt.Read16(bus.BLTDPTH))
	assert.Equal(t, uint8(0x44), r.blt.Read8(bus.BLTDPTL+1))

	r.blt.Write8(bus.BLTSIZE+1, 0x41)
	assert.True(t, r.blt.Done())
	assert.Equal(t, uint16(0x0041), r.blt.Read16(bus.BLTSIZE))

	r.blt.Write16(bus.BLTBMOD, 0x0028)
	assert.Equal(t, uint16(0x0028), r.blt.Read16(bus.BLTBMOD))
	assert.Equal(t, uint8(0x28), r.blt.Read8(bus.BLTBMOD+1))

	assert.Zero(t, r.blt.Read16(0x068))

	t.Run("reset", func(t *testing.T) {
		r.blt.Write16(bus.BLTSIZE, 0)
		r.blt.Reset()
		assert.True(t, r.blt.Done())
		assert.Zero(t, r.blt.Read16(bus.BLTCON0))
		assert.Zero(t, r.blt.Read16(bus.BLTBMOD))
	})
}

func Test_IsRegister(t *testing.T) {
	for _, tc := range []struct {
		offset uint32
		want   bool
	}{
		{bus.BLTCON0, true},
		{bus.BLTDPTL + 1, true},
		{bus.BLTCON0L, true},
		{0x05c, false},
		{0x05e, false},
		{bus.BLTDMOD, true},
		{0x068, false},
		{0x06e, false},
		{bus.BLTADAT, true},
		{0x076, false},
		{0x03e, false},
	} {
		assert.Equal(t, tc.want, IsRegister(tc.offset), "%#03x", tc.offset)
	}
}
