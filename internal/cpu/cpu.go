// Package cpu implements a cycle-stepped 6502-compatible processor core.
package cpu

import (
	"github.com/retroenv/retrogolib/log"
)

const (
	// StackBase is the fixed memory page holding the hardware stack.
	StackBase = 0x0100
	// StackPointerReset is the stack pointer value after power-on or reset.
	StackPointerReset = 0xFD

	// ResetVector holds the address execution starts from.
	ResetVector = 0xFFFC
	// NMIVector holds the address jumped to on a non-maskable interrupt.
	NMIVector = 0xFFFA
	// IRQVector holds the address jumped to on BRK or a maskable interrupt.
	IRQVector = 0xFFFE
)

// MemoryInterface is the CPU's view of the system bus. Every fetch, operand
// access, and stack operation goes through it.
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU models the 2A03 processor core: registers, flags, and the
// fetch-decode-execute loop. It is driven one instruction at a time by an
// external loop; it never runs on its own.
type CPU struct {
	A  uint8  // accumulator
	X  uint8  // index register
	Y  uint8  // index register
	SP uint8  // stack pointer, offset into the stack page
	PC uint16 // program counter

	C bool // carry
	Z bool // zero
	I bool // interrupt disable
	D bool // decimal mode, stored but not acted upon
	B bool // break command
	V bool // overflow
	N bool // negative

	mem    MemoryInterface
	logger *log.Logger

	cycles uint64
	stall  uint64

	// Per-instruction scratch state.
	pageCrossed bool
	jumped      bool
}

// New returns a CPU attached to mem. Call Reset before stepping so the
// program counter is loaded from the reset vector. logger may be nil.
func New(mem MemoryInterface, logger *log.Logger) *CPU {
	return &CPU{
		SP:     StackPointerReset,
		I:      true,
		mem:    mem,
		logger: logger,
	}
}

// Reset puts the CPU into its power-on state and loads PC from the reset
// vector.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = StackPointerReset
	c.C, c.Z, c.D, c.B, c.V, c.N = false, false, false, false, false, false
	c.I = true
	c.PC = c.read16(ResetVector)
}

// Cycles returns the total cycle count consumed since power-on. The console
// loop reads this as the authoritative clock.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// AddStall idles the CPU for n cycles. Used to model the cost of OAM DMA.
func (c *CPU) AddStall(n uint64) {
	c.stall += n
}

// Step executes exactly one instruction and returns the cycles it consumed,
// including page-crossing and taken-branch surcharges. While a stall is
// pending it consumes a single idle cycle instead.
func (c *CPU) Step() uint64 {
	if c.stall > 0 {
		c.stall--
		c.cycles++
		return 1
	}

	start := c.cycles
	opcode := c.mem.Read(c.PC)
	inst := instructions[opcode]

	c.pageCrossed = false
	c.jumped = false

	// Operand bytes are assembled little-endian.
	var data uint16
	for i := uint16(1); i < uint16(inst.length); i++ {
		data |= uint16(c.mem.Read(c.PC+i)) << ((i - 1) * 8)
	}

	c.execute(inst, data)

	if !c.jumped {
		c.PC += uint16(inst.length)
	} else if inst.kind.isBranch() {
		// Taken branches cost one extra cycle.
		c.cycles++
	}

	c.cycles += uint64(inst.cycles)
	if c.pageCrossed {
		c.cycles += uint64(inst.pageCycles)
	}
	return c.cycles - start
}

// TriggerNMI services the non-maskable interrupt raised by the PPU at the
// start of vblank: push PC and status, set interrupt disable, and jump
// through the NMI vector.
func (c *CPU) TriggerNMI() {
	c.pushWord(c.PC)
	c.B = true
	c.push(c.GetStatusByte())
	c.B = false
	c.I = true
	c.PC = c.read16(NMIVector)
}

// GetStatusByte packs the individual flags into the 8-bit status register
// layout: C, Z, I, D, B, unused (always 1), V, N from bit 0 up.
func (c *CPU) GetStatusByte() uint8 {
	var status uint8 = 1 << 5
	if c.C {
		status |= 1 << 0
	}
	if c.Z {
		status |= 1 << 1
	}
	if c.I {
		status |= 1 << 2
	}
	if c.D {
		status |= 1 << 3
	}
	if c.B {
		status |= 1 << 4
	}
	if c.V {
		status |= 1 << 6
	}
	if c.N {
		status |= 1 << 7
	}
	return status
}

// SetStatusByte unpacks an 8-bit status value into the flags. The break
// flag is not a stored flag and is always cleared.
func (c *CPU) SetStatusByte(status uint8) {
	c.C = status&(1<<0) != 0
	c.Z = status&(1<<1) != 0
	c.I = status&(1<<2) != 0
	c.D = status&(1<<3) != 0
	c.B = false
	c.V = status&(1<<6) != 0
	c.N = status&(1<<7) != 0
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.mem.Read(addr))
	hi := uint16(c.mem.Read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) push(val uint8) {
	c.mem.Write(StackBase|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.mem.Read(StackBase | uint16(c.SP))
}

func (c *CPU) pushWord(val uint16) {
	c.push(uint8(val >> 8))
	c.push(uint8(val))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) setZN(val uint8) {
	c.Z = val == 0
	c.N = val&0x80 != 0
}

func differentPages(addr1, addr2 uint16) bool {
	return addr1&0xFF00 != addr2&0xFF00
}

// addressForMode resolves an instruction's raw operand into an effective
// address and records whether an indexed computation crossed a page.
func (c *CPU) addressForMode(data uint16, mode AddressingMode) uint16 {
	switch mode {
	case Absolute:
		return data
	case AbsoluteX:
		addr := data + uint16(c.X)
		c.pageCrossed = differentPages(addr, data)
		return addr
	case AbsoluteY:
		addr := data + uint16(c.Y)
		c.pageCrossed = differentPages(addr, data)
		return addr
	case IndexedIndirect:
		// The 2-byte pointer lives in the zero page at data+X and wraps
		// within it.
		lo := uint16(c.mem.Read(uint16(uint8(data) + c.X)))
		hi := uint16(c.mem.Read(uint16(uint8(data) + c.X + 1)))
		return hi<<8 | lo
	case Indirect:
		// The 6502 never increments the pointer's high byte: a pointer
		// ending in 0xFF reads its own page's first byte for the high half.
		lo := uint16(c.mem.Read(data))
		var hi uint16
		if data&0x00FF == 0x00FF {
			hi = uint16(c.mem.Read(data & 0xFF00))
		} else {
			hi = uint16(c.mem.Read(data + 1))
		}
		return hi<<8 | lo
	case IndirectIndexed:
		lo := uint16(c.mem.Read(uint16(uint8(data))))
		hi := uint16(c.mem.Read(uint16(uint8(data) + 1)))
		addr := (hi<<8 | lo) + uint16(c.Y)
		c.pageCrossed = differentPages(addr, addr-uint16(c.Y))
		return addr
	case Relative:
		// Signed 8-bit displacement from the byte after the branch.
		return c.PC + 2 + uint16(int16(int8(data)))
	case ZeroPage:
		return data & 0x00FF
	case ZeroPageX:
		return uint16(uint8(data) + c.X)
	case ZeroPageY:
		return uint16(uint8(data) + c.Y)
	default:
		// Implied, Accumulator, and Immediate resolve no address.
		return 0
	}
}

func (c *CPU) readOperand(data uint16, mode AddressingMode) uint8 {
	if mode == Immediate {
		return uint8(data)
	}
	return c.mem.Read(c.addressForMode(data, mode))
}

func (c *CPU) writeOperand(data uint16, mode AddressingMode, val uint8) {
	c.mem.Write(c.addressForMode(data, mode), val)
}
