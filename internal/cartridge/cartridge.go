// Package cartridge implements iNES ROM loading and NROM address translation.
package cartridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// Signature is the iNES magic constant: "NES" followed by an MS-DOS EOF.
	Signature = 0x4E45531A

	headerSize  = 16
	trainerSize = 512

	// PRGUnitSize is the size of one PRG ROM bank.
	PRGUnitSize = 16384
	// CHRUnitSize is the size of one CHR ROM bank.
	CHRUnitSize = 8192
	// PRGRAMSize is the size of the battery-backed RAM window at 0x6000.
	PRGRAMSize = 8192
)

var (
	ErrInvalidSignature  = errors.New("invalid iNES signature")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrReadOnly          = errors.New("write to read-only cartridge address")
	ErrUnmapped          = errors.New("address not mapped by cartridge")
)

// Mirroring selects how the PPU folds nametable addresses.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
)

func (m Mirroring) String() string {
	if m == MirrorVertical {
		return "vertical"
	}
	return "horizontal"
}

// header is the fixed 16-byte iNES file header. The signature is stored
// big-endian; all remaining fields are single bytes.
type header struct {
	Signature uint32
	PRGUnits  uint8 // PRG ROM size in 16KB units
	CHRUnits  uint8 // CHR ROM size in 8KB units, 0 means CHR RAM
	Flags6    uint8 // mirroring, battery, trainer, low mapper nibble
	Flags7    uint8 // high mapper nibble
	Flags8    uint8
	Flags9    uint8
	Flags10   uint8
	Padding   [5]uint8
}

// Cartridge holds the parsed ROM image and answers address-translated
// reads and writes from both the CPU and the PPU.
type Cartridge struct {
	prgROM []uint8
	chrROM []uint8
	prgRAM [PRGRAMSize]uint8

	mapperID uint8
	mirror   Mirroring
	chrRAM   bool
}

// Load parses an iNES image from r. It fails with a descriptive error on a
// bad signature or a mapper other than 0 (NROM) rather than constructing a
// cartridge with undefined state.
func Load(r io.Reader) (*Cartridge, error) {
	var h header
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("reading iNES header: %w", err)
	}
	if h.Signature != Signature {
		return nil, fmt.Errorf("%w: got 0x%08X", ErrInvalidSignature, h.Signature)
	}
	if h.PRGUnits == 0 {
		return nil, errors.New("iNES header declares zero PRG ROM banks")
	}

	c := &Cartridge{
		mapperID: (h.Flags7 & 0xF0) | (h.Flags6 >> 4),
	}
	if c.mapperID != 0 {
		return nil, fmt.Errorf("%w: mapper %d, only NROM (0) is supported", ErrUnsupportedMapper, c.mapperID)
	}
	if h.Flags6&0x01 != 0 {
		c.mirror = MirrorVertical
	}

	// A trainer block sits between the header and PRG ROM when flagged.
	if h.Flags6&0x04 != 0 {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("skipping trainer: %w", err)
		}
	}

	c.prgROM = make([]uint8, int(h.PRGUnits)*PRGUnitSize)
	if _, err := io.ReadFull(r, c.prgROM); err != nil {
		return nil, fmt.Errorf("reading PRG ROM: %w", err)
	}

	if h.CHRUnits == 0 {
		// The board uses CHR RAM instead of CHR ROM.
		c.chrROM = make([]uint8, CHRUnitSize)
		c.chrRAM = true
	} else {
		c.chrROM = make([]uint8, int(h.CHRUnits)*CHRUnitSize)
		if _, err := io.ReadFull(r, c.chrROM); err != nil {
			return nil, fmt.Errorf("reading CHR ROM: %w", err)
		}
	}

	return c, nil
}

// LoadFile parses an iNES image from the file at path.
func LoadFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read returns the byte at addr in the cartridge's address space:
// pattern data below 0x2000, battery RAM in [0x6000,0x8000), PRG ROM at
// 0x8000 and above (mirrored when only one 16KB bank is present).
func (c *Cartridge) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x2000:
		return c.chrROM[addr], nil
	case addr >= 0x6000 && addr < 0x8000:
		return c.prgRAM[int(addr)%PRGRAMSize], nil
	case addr >= 0x8000:
		offset := int(addr) - 0x8000
		if len(c.prgROM) == PRGUnitSize {
			offset %= PRGUnitSize
		}
		return c.prgROM[offset], nil
	default:
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrUnmapped, addr)
	}
}

// Write stores val at addr. ROM regions reject the write with an error
// instead of silently dropping it, since a write there is a strong signal
// of an addressing bug on the caller's side.
func (c *Cartridge) Write(addr uint16, val uint8) error {
	switch {
	case addr < 0x2000:
		if !c.chrRAM {
			return fmt.Errorf("%w: CHR ROM at 0x%04X", ErrReadOnly, addr)
		}
		c.chrROM[addr] = val
		return nil
	case addr >= 0x6000 && addr < 0x8000:
		c.prgRAM[int(addr)%PRGRAMSize] = val
		return nil
	case addr >= 0x8000:
		return fmt.Errorf("%w: PRG ROM at 0x%04X", ErrReadOnly, addr)
	default:
		return fmt.Errorf("%w: write at 0x%04X", ErrUnmapped, addr)
	}
}

// Mirroring returns the nametable mirroring mode declared by the header.
func (c *Cartridge) Mirroring() Mirroring {
	return c.mirror
}

// MapperID returns the mapper number parsed from the header flags.
func (c *Cartridge) MapperID() uint8 {
	return c.mapperID
}

// PRGSize returns the PRG ROM size in bytes.
func (c *Cartridge) PRGSize() int {
	return len(c.prgROM)
}

// CHRSize returns the CHR ROM/RAM size in bytes.
func (c *Cartridge) CHRSize() int {
	return len(c.chrROM)
}

// HasCHRRAM reports whether the board uses writable CHR RAM.
func (c *Cartridge) HasCHRRAM() bool {
	return c.chrRAM
}
