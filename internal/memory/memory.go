// Package memory implements the CPU and PPU address buses of the NES.
package memory

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const (
	ramSize = 0x800

	// dmaStallCycles is the CPU time charged for a full OAM page copy.
	dmaStallCycles = 512
)

// PPU gives the bus access to the picture unit's register file.
type PPU interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
	WriteOAMDMA(data []uint8)
}

// Cartridge exposes the mapped game board. Reads outside the mapped
// windows return an error instead of open-bus garbage.
type Cartridge interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// Joypad is the controller port at $4016.
type Joypad interface {
	Read() uint8
	Write(value uint8)
}

// Staller lets the bus charge DMA transfer time to the CPU.
type Staller interface {
	AddStall(cycles uint64)
}

// Bus is the CPU-visible 64KB address space: 2KB of internal RAM
// mirrored to $2000, the PPU register file mirrored every 8 bytes up to
// $4000, the I/O ports, and the cartridge from $6000 up.
type Bus struct {
	ram     [ramSize]uint8
	ppu     PPU
	cart    Cartridge
	joypad  Joypad
	staller Staller
	logger  *log.Logger
}

// NewBus wires the CPU address space to its peripherals.
func NewBus(ppu PPU, cart Cartridge, joypad Joypad, logger *log.Logger) *Bus {
	return &Bus{
		ppu:    ppu,
		cart:   cart,
		joypad: joypad,
		logger: logger,
	}
}

// SetStaller registers the component billed for DMA transfers. It is set
// after construction because the CPU itself reads through the bus.
func (b *Bus) SetStaller(s Staller) {
	b.staller = s
}

// Read returns the byte at address, applying RAM and register mirroring.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.ram[address%ramSize]
	case address < 0x4000:
		return b.ppu.ReadRegister(0x2000 + address%8)
	case address == 0x4016:
		return b.joypad.Read()
	case address < 0x6000:
		// APU and expansion space, not populated.
		return 0
	default:
		value, err := b.cart.Read(address)
		if err != nil {
			panic(fmt.Sprintf("cartridge read at $%04X: %v", address, err))
		}
		return value
	}
}

// Write stores a byte at address. A write to $4014 starts an OAM DMA
// transfer before returning.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address%ramSize] = value
	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+address%8, value)
	case address == 0x4014:
		b.transferOAM(value)
	case address == 0x4016:
		b.joypad.Write(value)
	case address < 0x6000:
		// APU and expansion space, writes dropped.
	default:
		if err := b.cart.Write(address, value); err != nil && b.logger != nil {
			b.logger.Warn("cartridge write ignored",
				log.String("address", fmt.Sprintf("$%04X", address)),
				log.Err(err))
		}
	}
}

// transferOAM copies one 256-byte page into sprite memory and stalls the
// CPU for the duration of the transfer.
func (b *Bus) transferOAM(page uint8) {
	base := uint16(page) << 8
	var data [256]uint8
	for i := range data {
		data[i] = b.Read(base + uint16(i))
	}
	b.ppu.WriteOAMDMA(data[:])
	if b.staller != nil {
		b.staller.AddStall(dmaStallCycles)
	}
}
