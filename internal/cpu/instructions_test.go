package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestADC(t *testing.T) {
	tests := []struct {
		name    string
		a       uint8
		operand uint8
		carryIn bool
		wantA   uint8
		wantC   bool
		wantV   bool
		wantZ   bool
		wantN   bool
	}{
		{"simple add", 0x10, 0x20, false, 0x30, false, false, false, false},
		{"add with carry in", 0x10, 0x20, true, 0x31, false, false, false, false},
		{"unsigned overflow sets carry", 0xFF, 0x01, false, 0x00, true, false, true, false},
		{"signed overflow positive", 0x50, 0x50, false, 0xA0, false, true, false, true},
		{"signed overflow negative", 0x90, 0x90, false, 0x20, true, true, false, false},
		{"no signed overflow mixed signs", 0x50, 0x90, false, 0xE0, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHelper()
			h.resetAt(0x8000)
			h.loadProgram(0x8000, 0x69, tt.operand) // ADC #imm
			h.cpu.A = tt.a
			h.cpu.C = tt.carryIn

			h.cpu.Step()

			assert.Equal(t, tt.wantA, h.cpu.A)
			assert.Equal(t, tt.wantC, h.cpu.C)
			assert.Equal(t, tt.wantV, h.cpu.V)
			assert.Equal(t, tt.wantZ, h.cpu.Z)
			assert.Equal(t, tt.wantN, h.cpu.N)
		})
	}
}

func TestSBC(t *testing.T) {
	tests := []struct {
		name    string
		a       uint8
		operand uint8
		carryIn bool
		wantA   uint8
		wantC   bool
		wantV   bool
	}{
		{"no borrow", 0x50, 0x10, true, 0x40, true, false},
		{"borrow clears carry", 0x10, 0x20, true, 0xF0, false, false},
		{"borrow in", 0x50, 0x10, false, 0x3F, true, false},
		{"signed overflow", 0x50, 0xB0, true, 0xA0, false, true},
		{"zero result", 0x42, 0x42, true, 0x00, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHelper()
			h.resetAt(0x8000)
			h.loadProgram(0x8000, 0xE9, tt.operand) // SBC #imm
			h.cpu.A = tt.a
			h.cpu.C = tt.carryIn

			h.cpu.Step()

			assert.Equal(t, tt.wantA, h.cpu.A)
			assert.Equal(t, tt.wantC, h.cpu.C)
			assert.Equal(t, tt.wantV, h.cpu.V)
		})
	}
}

// Zero and negative must track the masked result of every load, transfer,
// logical, and increment/decrement operation.
func TestZeroNegativePolicy(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(c *CPU)
		wantZ   bool
		wantN   bool
	}{
		{"LDA zero", []uint8{0xA9, 0x00}, nil, true, false},
		{"LDA negative", []uint8{0xA9, 0x80}, nil, false, true},
		{"LDX positive", []uint8{0xA2, 0x7F}, nil, false, false},
		{"INX wraps to zero", []uint8{0xE8}, func(c *CPU) { c.X = 0xFF }, true, false},
		{"DEX wraps to negative", []uint8{0xCA}, func(c *CPU) { c.X = 0x00 }, false, true},
		{"AND clears to zero", []uint8{0x29, 0x0F}, func(c *CPU) { c.A = 0xF0 }, true, false},
		{"ORA sets bit 7", []uint8{0x09, 0x80}, func(c *CPU) { c.A = 0x01 }, false, true},
		{"TAX negative", []uint8{0xAA}, func(c *CPU) { c.A = 0xFF }, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHelper()
			h.resetAt(0x8000)
			h.loadProgram(0x8000, tt.program...)
			if tt.setup != nil {
				tt.setup(h.cpu)
			}

			h.cpu.Step()

			assert.Equal(t, tt.wantZ, h.cpu.Z)
			assert.Equal(t, tt.wantN, h.cpu.N)
		})
	}
}

func TestShiftsAndRotates(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x0A) // ASL A
	h.cpu.A = 0x81
	h.cpu.Step()
	assert.Equal(t, uint8(0x02), h.cpu.A)
	assert.True(t, h.cpu.C)

	h = newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x4A) // LSR A
	h.cpu.A = 0x01
	h.cpu.Step()
	assert.Equal(t, uint8(0x00), h.cpu.A)
	assert.True(t, h.cpu.C)
	assert.True(t, h.cpu.Z)

	h = newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x2A) // ROL A
	h.cpu.A = 0x80
	h.cpu.C = true
	h.cpu.Step()
	assert.Equal(t, uint8(0x01), h.cpu.A)
	assert.True(t, h.cpu.C)

	h = newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x6A) // ROR A
	h.cpu.A = 0x01
	h.cpu.C = true
	h.cpu.Step()
	assert.Equal(t, uint8(0x80), h.cpu.A)
	assert.True(t, h.cpu.C)
	assert.True(t, h.cpu.N)
}

func TestShiftInMemory(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x06, 0x10) // ASL $10
	h.mem.Write(0x0010, 0x40)

	h.cpu.Step()

	assert.Equal(t, uint8(0x80), h.mem.Read(0x0010))
	assert.True(t, h.cpu.N)
	assert.False(t, h.cpu.C)
}

func TestCompareSemantics(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xC9, 0x30) // CMP #$30
	h.cpu.A = 0x40

	h.cpu.Step()

	assert.True(t, h.cpu.C)
	assert.False(t, h.cpu.Z)
	assert.False(t, h.cpu.N)

	h = newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xC9, 0x50)
	h.cpu.A = 0x40

	h.cpu.Step()

	assert.False(t, h.cpu.C)
	assert.True(t, h.cpu.N)
}

func TestBITSetsFlagsFromMemory(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x24, 0x10) // BIT $10
	h.mem.Write(0x0010, 0xC0)
	h.cpu.A = 0x01

	h.cpu.Step()

	assert.True(t, h.cpu.N)
	assert.True(t, h.cpu.V)
	assert.True(t, h.cpu.Z)
}

func TestJSRAndRTS(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	h.loadProgram(0x9000, 0x60)             // RTS

	cycles := h.cpu.Step()
	assert.Equal(t, uint64(6), cycles)
	assert.Equal(t, uint16(0x9000), h.cpu.PC)

	cycles = h.cpu.Step()
	assert.Equal(t, uint64(6), cycles)
	assert.Equal(t, uint16(0x8003), h.cpu.PC)
}

func TestBRKAndRTI(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.mem.setBytes(IRQVector, 0x00, 0x90)
	h.loadProgram(0x8000, 0x00) // BRK
	h.loadProgram(0x9000, 0x40) // RTI
	h.cpu.C = true

	cycles := h.cpu.Step()
	assert.Equal(t, uint64(7), cycles)
	assert.Equal(t, uint16(0x9000), h.cpu.PC)
	assert.True(t, h.cpu.I)

	h.cpu.Step()
	assert.Equal(t, uint16(0x8002), h.cpu.PC)
	assert.True(t, h.cpu.C)
	assert.False(t, h.cpu.B)
}

func TestJMPIndirectPageWrapQuirk(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	h.mem.Write(0x02FF, 0x34)
	h.mem.Write(0x0300, 0x12) // would be the high byte without the quirk
	h.mem.Write(0x0200, 0x56)

	h.cpu.Step()

	assert.Equal(t, uint16(0x5634), h.cpu.PC)
}

func TestPageCrossPenalty(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xBD, 0xF0, 0x80) // LDA $80F0,X
	h.cpu.X = 0x20

	cycles := h.cpu.Step()

	assert.Equal(t, uint64(5), cycles)

	h = newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xBD, 0x00, 0x80)
	h.cpu.X = 0x20

	cycles = h.cpu.Step()

	assert.Equal(t, uint64(4), cycles)
}

func TestZeroPageIndexedWraps(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xB5, 0xF0) // LDA $F0,X
	h.cpu.X = 0x20
	h.mem.Write(0x0010, 0x99) // 0xF0+0x20 wraps within the zero page

	h.cpu.Step()

	assert.Equal(t, uint8(0x99), h.cpu.A)
}

func TestIndexedIndirectPointerWraps(t *testing.T) {
	h := newTestHelper()
	h.resetAt(0x8000)
	h.loadProgram(0x8000, 0xA1, 0xFE) // LDA ($FE,X)
	h.cpu.X = 0x01
	h.mem.Write(0x00FF, 0x34)
	h.mem.Write(0x0000, 0x12)
	h.mem.Write(0x1234, 0x77)

	h.cpu.Step()

	assert.Equal(t, uint8(0x77), h.cpu.A)
}
