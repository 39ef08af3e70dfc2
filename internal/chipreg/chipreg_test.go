package chipreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Word(t *testing.T) {
	w := Word(0x1234)
	assert.Equal(t, uint8(0x12), w.Byte(0x40))
	assert.Equal(t, uint8(0x34), w.Byte(0x41))

	w.SetByte(0x40, 0xab)
	assert.Equal(t, Word(0xab34), w)
	w.SetByte(0x41, 0xcd)
	assert.Equal(t, Word(0xabcd), w)
}

func Test_Pointer(t *testing.T) {
	p := Pointer(0x00012344)
	assert.Equal(t, uint16(0x0001), p.Word(0x50))
	assert.Equal(t, uint16(0x2344), p.Word(0x52))
	assert.Equal(t, uint8(0x23), p.Byte(0x52))
	assert.Equal(t, uint8(0x44), p.Byte(0x53))
	assert.Equal(t, uint8(0x01), p.Byte(0x51))

	p.SetWord(0x50, 0x0007)
	assert.Equal(t, Pointer(0x00072344), p)
	p.SetWord(0x52, 0x8000)
	assert.Equal(t, Pointer(0x00078000), p)
	p.SetByte(0x53, 0x10)
	assert.Equal(t, Pointer(0x00078010), p)
	p.SetByte(0x50, 0xff)
	assert.Equal(t, Pointer(0xff078010), p)
}

func Test_SetClear(t *testing.T) {
	type testArgs struct {
		reg      uint16
		data     uint16
		expected uint16
	}

	testDo := func(t *testing.T, args testArgs) {
		assert.Equal(t, args.expected, SetClear(args.reg, args.data))
	}

	t.Run("set", func(t *testing.T) {
		testDo(t, testArgs{reg: 0x0001, data: 0x8240, expected: 0x0241})
	})
	t.Run("clear", func(t *testing.T) {
		testDo(t, testArgs{reg: 0x0241, data: 0x0201, expected: 0x0040})
	})
	t.Run("bit 15 never stored", func(t *testing.T) {
		testDo(t, testArgs{reg: 0, data: 0xffff, expected: 0x7fff})
	})
	t.Run("clear nothing", func(t *testing.T) {
		testDo(t, testArgs{reg: 0x1234, data: 0, expected: 0x1234})
	})
}

func Test_Duplicate(t *testing.T) {
	assert.Equal(t, uint16(0x8282), Duplicate(0x82))
}
