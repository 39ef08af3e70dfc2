package memory

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKickstart(size int) []uint8 {
	data := make([]uint8, size)
	binary.BigEndian.PutUint32(data, romMagic512K)
	binary.BigEndian.PutUint32(data[4:], 0xf800d2)
	binary.BigEndian.PutUint16(data[10:], 40)
	binary.BigEndian.PutUint16(data[12:], 68)
	for i := 16; i < size; i++ {
		data[i] = uint8(i >> 12)
	}
	return data
}

func Test_ParseROM(t *testing.T) {
	type testArgs struct {
		size    int
		wantErr bool
	}

	testDo := func(t *testing.T, args testArgs) {
		rom, err := ParseROM(bytes.NewReader(testKickstart(args.size)))
		if args.wantErr {
			assert.Error(t, err)
			return
		}
		require.NoError(t, err)
		assert.Equal(t, romSize512K, rom.Size())
	}

	t.Run("512K", func(t *testing.T) {
		testDo(t, testArgs{size: romSize512K})
	})
	t.Run("256K", func(t *testing.T) {
		testDo(t, testArgs{size: romSize256K})
	})
	t.Run("too small", func(t *testing.T) {
		testDo(t, testArgs{size: 0x20000, wantErr: true})
	})
	t.Run("too large", func(t *testing.T) {
		testDo(t, testArgs{size: 0x100000, wantErr: true})
	})
	t.Run("empty", func(t *testing.T) {
		testDo(t, testArgs{size: 0, wantErr: true})
	})
}

func Test_ROM_Mirror(t *testing.T) {
	rom, err := ParseROM(bytes.NewReader(testKickstart(romSize256K)))
	require.NoError(t, err)

	lo := rom.Page(0x1000)
	hi := rom.Page(0x41000)
	assert.Equal(t, uint8(1), lo.Peek8(0x1000))
	assert.Equal(t, lo.Peek16(0x1234), hi.Peek16(0x41234))

	t.Run("offset wraps", func(t *testing.T) {
		pg := rom.Page(0x80000)
		assert.Equal(t, uint16(0x1114), pg.Peek16(0))
	})

	t.Run("pages are copies", func(t *testing.T) {
		pg := rom.Page(0)
		pg.Write16(0, 0)
		assert.Equal(t, uint16(0x1114), rom.Page(0).Peek16(0))
	})
}

func Test_NewROM(t *testing.T) {
	rom, err := NewROM([]uint8{0xaa, 0xbb})
	require.NoError(t, err)
	pg := rom.Page(0x7f000)
	assert.Equal(t, uint16(0xaabb), pg.Peek16(0x7fffe))

	_, err = NewROM(make([]uint8, 3))
	assert.Error(t, err)
	_, err = NewROM(nil)
	assert.Error(t, err)
}

func Test_LoadROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kick.rom")
	require.NoError(t, os.WriteFile(path, testKickstart(romSize512K), 0o644))

	rom, err := LoadROM(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x4e), rom.Page(0).Peek8(2))

	_, err = LoadROM(filepath.Join(t.TempDir(), "missing.rom"))
	assert.Error(t, err)
}
