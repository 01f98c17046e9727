package cpu

import (
	"github.com/retroenv/retrogolib/log"
)

// execute dispatches one decoded instruction. Every documented operation has
// a case; undocumented operations fall through to a placeholder that logs
// and performs no architectural effect, since real cartridges execute them
// and a hard failure mid-run would be wrong.
func (c *CPU) execute(inst instruction, data uint16) {
	switch inst.kind {
	case opADC:
		c.adc(inst, data)
	case opAND:
		c.A &= c.readOperand(data, inst.mode)
		c.setZN(c.A)
	case opASL:
		c.asl(inst, data)
	case opBCC:
		c.branch(data, !c.C)
	case opBCS:
		c.branch(data, c.C)
	case opBEQ:
		c.branch(data, c.Z)
	case opBIT:
		c.bit(inst, data)
	case opBMI:
		c.branch(data, c.N)
	case opBNE:
		c.branch(data, !c.Z)
	case opBPL:
		c.branch(data, !c.N)
	case opBRK:
		c.brk()
	case opBVC:
		c.branch(data, !c.V)
	case opBVS:
		c.branch(data, c.V)
	case opCLC:
		c.C = false
	case opCLD:
		c.D = false
	case opCLI:
		c.I = false
	case opCLV:
		c.V = false
	case opCMP:
		c.compare(c.A, inst, data)
	case opCPX:
		c.compare(c.X, inst, data)
	case opCPY:
		c.compare(c.Y, inst, data)
	case opDEC:
		val := c.readOperand(data, inst.mode) - 1
		c.writeOperand(data, inst.mode, val)
		c.setZN(val)
	case opDEX:
		c.X--
		c.setZN(c.X)
	case opDEY:
		c.Y--
		c.setZN(c.Y)
	case opEOR:
		c.A ^= c.readOperand(data, inst.mode)
		c.setZN(c.A)
	case opINC:
		val := c.readOperand(data, inst.mode) + 1
		c.writeOperand(data, inst.mode, val)
		c.setZN(val)
	case opINX:
		c.X++
		c.setZN(c.X)
	case opINY:
		c.Y++
		c.setZN(c.Y)
	case opJMP:
		c.PC = c.addressForMode(data, inst.mode)
		c.jumped = true
	case opJSR:
		c.jsr(inst, data)
	case opLDA:
		c.A = c.readOperand(data, inst.mode)
		c.setZN(c.A)
	case opLDX:
		c.X = c.readOperand(data, inst.mode)
		c.setZN(c.X)
	case opLDY:
		c.Y = c.readOperand(data, inst.mode)
		c.setZN(c.Y)
	case opLSR:
		c.lsr(inst, data)
	case opNOP:
	case opORA:
		c.A |= c.readOperand(data, inst.mode)
		c.setZN(c.A)
	case opPHA:
		c.push(c.A)
	case opPHP:
		// The break bit is forced to 1 in the pushed copy only.
		c.B = true
		c.push(c.GetStatusByte())
		c.B = false
	case opPLA:
		c.A = c.pop()
		c.setZN(c.A)
	case opPLP:
		c.SetStatusByte(c.pop())
	case opROL:
		c.rol(inst, data)
	case opROR:
		c.ror(inst, data)
	case opRTI:
		c.SetStatusByte(c.pop())
		c.PC = c.popWord()
		c.jumped = true
	case opRTS:
		c.PC = c.popWord() + 1
		c.jumped = true
	case opSBC:
		c.sbc(inst, data)
	case opSEC:
		c.C = true
	case opSED:
		c.D = true
	case opSEI:
		c.I = true
	case opSTA:
		c.writeOperand(data, inst.mode, c.A)
	case opSTX:
		c.writeOperand(data, inst.mode, c.X)
	case opSTY:
		c.writeOperand(data, inst.mode, c.Y)
	case opTAX:
		c.X = c.A
		c.setZN(c.X)
	case opTAY:
		c.Y = c.A
		c.setZN(c.Y)
	case opTSX:
		c.X = c.SP
		c.setZN(c.X)
	case opTXA:
		c.A = c.X
		c.setZN(c.A)
	case opTXS:
		c.SP = c.X
	case opTYA:
		c.A = c.Y
		c.setZN(c.A)
	default:
		if c.logger != nil {
			c.logger.Debug("undocumented opcode executed as no-op",
				log.String("op", inst.kind.String()),
				log.String("pc", hex16(c.PC)))
		}
	}
}

// adc adds memory to the accumulator with carry. The overflow flag is
// computed from the sign bits of both operands and the result; the carry
// reflects the unmasked 9-bit sum.
func (c *CPU) adc(inst instruction, data uint16) {
	src := c.readOperand(data, inst.mode)

	var carry uint16
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(src) + carry
	result := uint8(sum)

	c.V = (^(c.A^src))&(c.A^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

// sbc subtracts memory from the accumulator with borrow. Carry set means no
// borrow occurred.
func (c *CPU) sbc(inst instruction, data uint16) {
	src := c.readOperand(data, inst.mode)

	var borrow int16 = 1
	if c.C {
		borrow = 0
	}
	diff := int16(c.A) - int16(src) - borrow
	result := uint8(diff)

	c.V = (c.A^src)&(c.A^result)&0x80 != 0
	c.C = diff >= 0
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg uint8, inst instruction, data uint16) {
	src := c.readOperand(data, inst.mode)
	c.C = reg >= src
	c.setZN(reg - src)
}

func (c *CPU) bit(inst instruction, data uint16) {
	src := c.readOperand(data, inst.mode)
	c.V = src&(1<<6) != 0
	c.Z = src&c.A == 0
	c.N = src&(1<<7) != 0
}

func (c *CPU) branch(data uint16, condition bool) {
	if condition {
		c.PC = c.addressForMode(data, Relative)
		c.jumped = true
	}
}

func (c *CPU) brk() {
	c.PC += 2
	c.pushWord(c.PC)
	c.B = true
	c.push(c.GetStatusByte())
	c.B = false
	c.I = true
	c.PC = c.read16(IRQVector)
	c.jumped = true
}

func (c *CPU) jsr(inst instruction, data uint16) {
	// The pushed return address points at the last byte of the JSR; RTS
	// adds one to land on the next instruction.
	c.PC += 2
	c.pushWord(c.PC)
	c.PC = c.addressForMode(data, inst.mode)
	c.jumped = true
}

func (c *CPU) asl(inst instruction, data uint16) {
	src := c.shiftOperand(inst, data)
	c.C = src&0x80 != 0
	src <<= 1
	c.setZN(src)
	c.storeShifted(inst, data, src)
}

func (c *CPU) lsr(inst instruction, data uint16) {
	src := c.shiftOperand(inst, data)
	c.C = src&0x01 != 0
	src >>= 1
	c.setZN(src)
	c.storeShifted(inst, data, src)
}

func (c *CPU) rol(inst instruction, data uint16) {
	src := c.shiftOperand(inst, data)
	oldCarry := c.C
	c.C = src&0x80 != 0
	src <<= 1
	if oldCarry {
		src |= 0x01
	}
	c.setZN(src)
	c.storeShifted(inst, data, src)
}

func (c *CPU) ror(inst instruction, data uint16) {
	src := c.shiftOperand(inst, data)
	oldCarry := c.C
	c.C = src&0x01 != 0
	src >>= 1
	if oldCarry {
		src |= 0x80
	}
	c.setZN(src)
	c.storeShifted(inst, data, src)
}

func (c *CPU) shiftOperand(inst instruction, data uint16) uint8 {
	if inst.mode == Accumulator {
		return c.A
	}
	return c.readOperand(data, inst.mode)
}

func (c *CPU) storeShifted(inst instruction, data uint16, val uint8) {
	if inst.mode == Accumulator {
		c.A = val
		return
	}
	c.writeOperand(data, inst.mode, val)
}
