package cartridge

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type romOptions struct {
	prgUnits uint8
	chrUnits uint8
	flags6   uint8
	flags7   uint8
	trainer  bool
}

// buildROM assembles a syntactically valid iNES image in memory. PRG bytes
// are filled with the bank number + 1 so bank mirroring is observable.
func buildROM(opts romOptions) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(Signature))
	buf.Write([]byte{opts.prgUnits, opts.chrUnits, opts.flags6, opts.flags7})
	buf.Write(make([]byte, 8))

	if opts.trainer {
		buf.Write(make([]byte, trainerSize))
	}
	for bank := 0; bank < int(opts.prgUnits); bank++ {
		prg := make([]byte, PRGUnitSize)
		for i := range prg {
			prg[i] = byte(bank + 1)
		}
		buf.Write(prg)
	}
	for bank := 0; bank < int(opts.chrUnits); bank++ {
		chr := make([]byte, CHRUnitSize)
		for i := range chr {
			chr[i] = 0xC0 | byte(bank)
		}
		buf.Write(chr)
	}
	return buf.Bytes()
}

func loadROM(t *testing.T, opts romOptions) *Cartridge {
	t.Helper()
	c, err := Load(bytes.NewReader(buildROM(opts)))
	assert.NoError(t, err)
	return c
}

func TestLoadRejectsBadSignature(t *testing.T) {
	rom := buildROM(romOptions{prgUnits: 1, chrUnits: 1})
	rom[0] = 'X'

	_, err := Load(bytes.NewReader(rom))
	assert.Error(t, err)
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	// Mapper 1: low nibble in flags6 bits 4-7.
	rom := buildROM(romOptions{prgUnits: 1, chrUnits: 1, flags6: 0x10})

	_, err := Load(bytes.NewReader(rom))
	assert.Error(t, err)
}

func TestLoadMapperFromBothFlagBytes(t *testing.T) {
	// Mapper 66 = 0x42: high nibble from flags7, low nibble from flags6.
	rom := buildROM(romOptions{prgUnits: 1, chrUnits: 1, flags6: 0x20, flags7: 0x40})

	_, err := Load(bytes.NewReader(rom))
	assert.Error(t, err)
}

func TestLoadRejectsZeroPRGBanks(t *testing.T) {
	rom := buildROM(romOptions{prgUnits: 0, chrUnits: 1})

	_, err := Load(bytes.NewReader(rom))
	assert.Error(t, err)
}

func TestLoadSkipsTrainer(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1, flags6: 0x04, trainer: true})

	got, err := c.Read(0x8000)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), got)
}

func TestMirroringFlag(t *testing.T) {
	horizontal := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1})
	assert.Equal(t, MirrorHorizontal, horizontal.Mirroring())

	vertical := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1, flags6: 0x01})
	assert.Equal(t, MirrorVertical, vertical.Mirroring())
}

func TestPRGMirroringSingleBank(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1})

	// A single 16KB bank answers both halves of the 32KB window.
	low, err := c.Read(0x8123)
	assert.NoError(t, err)
	high, err := c.Read(0xC123)
	assert.NoError(t, err)
	assert.Equal(t, low, high)
}

func TestPRGDirectTwoBanks(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 2, chrUnits: 1})

	low, err := c.Read(0x8000)
	assert.NoError(t, err)
	high, err := c.Read(0xC000)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), low)
	assert.Equal(t, uint8(2), high)
}

func TestPRGRAMRoundTrip(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1})

	assert.NoError(t, c.Write(0x6000, 0xAB))
	got, err := c.Read(0x6000)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xAB), got)
}

func TestROMWritesRejected(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1})

	assert.Error(t, c.Write(0x8000, 0x01))
	assert.Error(t, c.Write(0x0000, 0x01))
}

func TestCHRRAMWritable(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 0})
	assert.True(t, c.HasCHRRAM())

	assert.NoError(t, c.Write(0x1000, 0x5A))
	got, err := c.Read(0x1000)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x5A), got)
}

func TestUnmappedRange(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 1, chrUnits: 1})

	_, err := c.Read(0x4000)
	assert.Error(t, err)
	assert.Error(t, c.Write(0x4000, 0x01))
}

func TestReadIdempotent(t *testing.T) {
	c := loadROM(t, romOptions{prgUnits: 2, chrUnits: 1})

	for _, addr := range []uint16{0x0000, 0x1FFF, 0x6000, 0x7FFF, 0x8000, 0xFFFF} {
		first, err := c.Read(addr)
		assert.NoError(t, err)
		second, err := c.Read(addr)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
