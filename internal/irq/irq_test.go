package irq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Level(t *testing.T) {
	type testArgs struct {
		enable   uint16
		raise    uint16
		expected int
	}

	testDo := func(t *testing.T, args testArgs) {
		c := NewController()
		c.WriteEnable(0x8000 | args.enable)
		c.Raise(args.raise)
		assert.Equal(t, args.expected, c.Level())
	}

	t.Run("nothing requested", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | 0x3fff, expected: 0})
	})
	t.Run("master disabled", func(t *testing.T) {
		testDo(t, testArgs{enable: VERTB, raise: VERTB, expected: 0})
	})
	t.Run("not enabled", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | BLIT, raise: VERTB, expected: 0})
	})
	t.Run("vertical blank", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | VERTB, raise: VERTB, expected: 3})
	})
	t.Run("highest wins", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | 0x3fff, raise: SOFT | BLIT | AUD2 | PORTS, expected: 4})
	})
	t.Run("external", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | EXTER | TBE, raise: EXTER | TBE, expected: 6})
	})
	t.Run("level 1", func(t *testing.T) {
		testDo(t, testArgs{enable: INTEN | DSKBLK, raise: DSKBLK, expected: 1})
	})
}

func Test_Acknowledge(t *testing.T) {
	c := NewController()
	c.WriteEnable(0x8000 | INTEN | BLIT | VERTB)
	c.Raise(BLIT | VERTB)
	assert.Equal(t, uint16(BLIT|VERTB), c.Request())

	// acknowledging is a clear write to INTREQ
	c.WriteRequest(BLIT | VERTB)
	assert.Zero(t, c.Request())
	assert.Equal(t, 0, c.Level())

	// a software interrupt is a set write
	c.WriteEnable(0x8000 | SOFT)
	c.WriteRequest(0x8000 | SOFT)
	assert.Equal(t, 1, c.Level())

	c.WriteEnable(INTEN)
	assert.Equal(t, 0, c.Level())
	assert.Equal(t, uint16(BLIT|VERTB|SOFT), c.Enable())

	c.Reset()
	assert.Zero(t, c.Enable())
	assert.Zero(t, c.Request())
}
