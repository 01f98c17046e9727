package memory

import (
	"fmt"

	"nescore/internal/cartridge"
)

// PPUBus is the picture unit's 16KB address space: pattern tables on the
// cartridge, 2KB of nametable RAM folded by the board's mirroring mode,
// and 32 bytes of palette RAM.
type PPUBus struct {
	cart       Cartridge
	mirroring  cartridge.Mirroring
	nametables [0x800]uint8
	palette    [32]uint8
}

// NewPPUBus wires the PPU address space to the cartridge's pattern
// tables, folding nametable addresses per the given mirroring mode.
func NewPPUBus(cart Cartridge, mirroring cartridge.Mirroring) *PPUBus {
	return &PPUBus{
		cart:      cart,
		mirroring: mirroring,
	}
}

// Read returns the byte at address in the PPU address space.
func (b *PPUBus) Read(address uint16) uint8 {
	address %= 0x4000
	switch {
	case address < 0x2000:
		value, err := b.cart.Read(address)
		if err != nil {
			panic(fmt.Sprintf("pattern table read at $%04X: %v", address, err))
		}
		return value
	case address < 0x3F00:
		return b.nametables[b.nametableIndex(address)]
	default:
		return b.palette[paletteIndex(address)]
	}
}

// Write stores a byte at address in the PPU address space.
func (b *PPUBus) Write(address uint16, value uint8) {
	address %= 0x4000
	switch {
	case address < 0x2000:
		// Pattern table writes only stick when the board carries CHR RAM.
		_ = b.cart.Write(address, value)
	case address < 0x3F00:
		b.nametables[b.nametableIndex(address)] = value
	default:
		b.palette[paletteIndex(address)] = value
	}
}

// nametableIndex folds a nametable address, including the $3000 mirror
// range, into the 2KB of physical nametable RAM.
func (b *PPUBus) nametableIndex(address uint16) uint16 {
	a := (address - 0x2000) % 0x1000
	if b.mirroring == cartridge.MirrorVertical {
		return a % 0x800
	}
	switch {
	case a >= 0x400 && a < 0xC00:
		a -= 0x400
	case a >= 0xC00:
		a -= 0x800
	}
	return a
}

// paletteIndex folds the palette mirrors: entries $3F10/$3F14/$3F18/$3F1C
// share storage with the background set.
func paletteIndex(address uint16) uint16 {
	a := (address - 0x3F00) % 0x20
	if a > 0x0F && a%4 == 0 {
		a -= 0x10
	}
	return a
}
