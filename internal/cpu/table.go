package cpu

// AddressingMode defines how an instruction's operand bytes map to an
// effective address.
type AddressingMode uint8

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
)

// opKind tags the operation an opcode performs. The set is closed; dispatch
// happens through a single switch in execute.
type opKind uint8

const (
	opADC opKind = iota
	opAHX
	opALR
	opANC
	opAND
	opARR
	opASL
	opAXS
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDCP
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opISC
	opJMP
	opJSR
	opKIL
	opLAS
	opLAX
	opLDA
	opLDX
	opLDY
	opLSR
	opNOP
	opORA
	opPHA
	opPHP
	opPLA
	opPLP
	opRLA
	opROL
	opROR
	opRRA
	opRTI
	opRTS
	opSAX
	opSBC
	opSEC
	opSED
	opSEI
	opSHX
	opSHY
	opSLO
	opSRE
	opSTA
	opSTX
	opSTY
	opTAS
	opTAX
	opTAY
	opTSX
	opTXA
	opTXS
	opTYA
	opXAA
)

var opNames = [...]string{
	opADC: "ADC", opAHX: "AHX", opALR: "ALR", opANC: "ANC", opAND: "AND",
	opARR: "ARR", opASL: "ASL", opAXS: "AXS", opBCC: "BCC", opBCS: "BCS",
	opBEQ: "BEQ", opBIT: "BIT", opBMI: "BMI", opBNE: "BNE", opBPL: "BPL",
	opBRK: "BRK", opBVC: "BVC", opBVS: "BVS", opCLC: "CLC", opCLD: "CLD",
	opCLI: "CLI", opCLV: "CLV", opCMP: "CMP", opCPX: "CPX", opCPY: "CPY",
	opDCP: "DCP", opDEC: "DEC", opDEX: "DEX", opDEY: "DEY", opEOR: "EOR",
	opINC: "INC", opINX: "INX", opINY: "INY", opISC: "ISC", opJMP: "JMP",
	opJSR: "JSR", opKIL: "KIL", opLAS: "LAS", opLAX: "LAX", opLDA: "LDA",
	opLDX: "LDX", opLDY: "LDY", opLSR: "LSR", opNOP: "NOP", opORA: "ORA",
	opPHA: "PHA", opPHP: "PHP", opPLA: "PLA", opPLP: "PLP", opRLA: "RLA",
	opROL: "ROL", opROR: "ROR", opRRA: "RRA", opRTI: "RTI", opRTS: "RTS",
	opSAX: "SAX", opSBC: "SBC", opSEC: "SEC", opSED: "SED", opSEI: "SEI",
	opSHX: "SHX", opSHY: "SHY", opSLO: "SLO", opSRE: "SRE", opSTA: "STA",
	opSTX: "STX", opSTY: "STY", opTAS: "TAS", opTAX: "TAX", opTAY: "TAY",
	opTSX: "TSX", opTXA: "TXA", opTXS: "TXS", opTYA: "TYA", opXAA: "XAA",
}

func (k opKind) String() string {
	return opNames[k]
}

// isBranch reports whether the kind is a conditional branch, which costs an
// extra cycle when taken.
func (k opKind) isBranch() bool {
	switch k {
	case opBCC, opBCS, opBEQ, opBMI, opBNE, opBPL, opBVC, opBVS:
		return true
	}
	return false
}

// instruction is one immutable dispatch record. length counts the opcode
// byte plus operand bytes; pageCycles is added when an indexed address
// computation crosses a page boundary.
type instruction struct {
	kind       opKind
	mode       AddressingMode
	length     uint8
	cycles     uint8
	pageCycles uint8
}

// instructions is the complete 256-entry dispatch table, indexed by opcode.
// Undocumented opcodes carry their conventional mnemonic, an operand length
// derived from the addressing mode, and the cycle cost real hardware charges,
// so executing one advances the machine safely.
var instructions = [256]instruction{
	0x00: {opBRK, Implied, 1, 7, 0},
	0x01: {opORA, IndexedIndirect, 2, 6, 0},
	0x02: {opKIL, Implied, 1, 2, 0},
	0x03: {opSLO, IndexedIndirect, 2, 8, 0},
	0x04: {opNOP, ZeroPage, 2, 3, 0},
	0x05: {opORA, ZeroPage, 2, 3, 0},
	0x06: {opASL, ZeroPage, 2, 5, 0},
	0x07: {opSLO, ZeroPage, 2, 5, 0},
	0x08: {opPHP, Implied, 1, 3, 0},
	0x09: {opORA, Immediate, 2, 2, 0},
	0x0A: {opASL, Accumulator, 1, 2, 0},
	0x0B: {opANC, Immediate, 2, 2, 0},
	0x0C: {opNOP, Absolute, 3, 4, 0},
	0x0D: {opORA, Absolute, 3, 4, 0},
	0x0E: {opASL, Absolute, 3, 6, 0},
	0x0F: {opSLO, Absolute, 3, 6, 0},
	0x10: {opBPL, Relative, 2, 2, 1},
	0x11: {opORA, IndirectIndexed, 2, 5, 1},
	0x12: {opKIL, Implied, 1, 2, 0},
	0x13: {opSLO, IndirectIndexed, 2, 8, 0},
	0x14: {opNOP, ZeroPageX, 2, 4, 0},
	0x15: {opORA, ZeroPageX, 2, 4, 0},
	0x16: {opASL, ZeroPageX, 2, 6, 0},
	0x17: {opSLO, ZeroPageX, 2, 6, 0},
	0x18: {opCLC, Implied, 1, 2, 0},
	0x19: {opORA, AbsoluteY, 3, 4, 1},
	0x1A: {opNOP, Implied, 1, 2, 0},
	0x1B: {opSLO, AbsoluteY, 3, 7, 0},
	0x1C: {opNOP, AbsoluteX, 3, 4, 1},
	0x1D: {opORA, AbsoluteX, 3, 4, 1},
	0x1E: {opASL, AbsoluteX, 3, 7, 0},
	0x1F: {opSLO, AbsoluteX, 3, 7, 0},
	0x20: {opJSR, Absolute, 3, 6, 0},
	0x21: {opAND, IndexedIndirect, 2, 6, 0},
	0x22: {opKIL, Implied, 1, 2, 0},
	0x23: {opRLA, IndexedIndirect, 2, 8, 0},
	0x24: {opBIT, ZeroPage, 2, 3, 0},
	0x25: {opAND, ZeroPage, 2, 3, 0},
	0x26: {opROL, ZeroPage, 2, 5, 0},
	0x27: {opRLA, ZeroPage, 2, 5, 0},
	0x28: {opPLP, Implied, 1, 4, 0},
	0x29: {opAND, Immediate, 2, 2, 0},
	0x2A: {opROL, Accumulator, 1, 2, 0},
	0x2B: {opANC, Immediate, 2, 2, 0},
	0x2C: {opBIT, Absolute, 3, 4, 0},
	0x2D: {opAND, Absolute, 3, 4, 0},
	0x2E: {opROL, Absolute, 3, 6, 0},
	0x2F: {opRLA, Absolute, 3, 6, 0},
	0x30: {opBMI, Relative, 2, 2, 1},
	0x31: {opAND, IndirectIndexed, 2, 5, 1},
	0x32: {opKIL, Implied, 1, 2, 0},
	0x33: {opRLA, IndirectIndexed, 2, 8, 0},
	0x34: {opNOP, ZeroPageX, 2, 4, 0},
	0x35: {opAND, ZeroPageX, 2, 4, 0},
	0x36: {opROL, ZeroPageX, 2, 6, 0},
	0x37: {opRLA, ZeroPageX, 2, 6, 0},
	0x38: {opSEC, Implied, 1, 2, 0},
	0x39: {opAND, AbsoluteY, 3, 4, 1},
	0x3A: {opNOP, Implied, 1, 2, 0},
	0x3B: {opRLA, AbsoluteY, 3, 7, 0},
	0x3C: {opNOP, AbsoluteX, 3, 4, 1},
	0x3D: {opAND, AbsoluteX, 3, 4, 1},
	0x3E: {opROL, AbsoluteX, 3, 7, 0},
	0x3F: {opRLA, AbsoluteX, 3, 7, 0},
	0x40: {opRTI, Implied, 1, 6, 0},
	0x41: {opEOR, IndexedIndirect, 2, 6, 0},
	0x42: {opKIL, Implied, 1, 2, 0},
	0x43: {opSRE, IndexedIndirect, 2, 8, 0},
	0x44: {opNOP, ZeroPage, 2, 3, 0},
	0x45: {opEOR, ZeroPage, 2, 3, 0},
	0x46: {opLSR, ZeroPage, 2, 5, 0},
	0x47: {opSRE, ZeroPage, 2, 5, 0},
	0x48: {opPHA, Implied, 1, 3, 0},
	0x49: {opEOR, Immediate, 2, 2, 0},
	0x4A: {opLSR, Accumulator, 1, 2, 0},
	0x4B: {opALR, Immediate, 2, 2, 0},
	0x4C: {opJMP, Absolute, 3, 3, 0},
	0x4D: {opEOR, Absolute, 3, 4, 0},
	0x4E: {opLSR, Absolute, 3, 6, 0},
	0x4F: {opSRE, Absolute, 3, 6, 0},
	0x50: {opBVC, Relative, 2, 2, 1},
	0x51: {opEOR, IndirectIndexed, 2, 5, 1},
	0x52: {opKIL, Implied, 1, 2, 0},
	0x53: {opSRE, IndirectIndexed, 2, 8, 0},
	0x54: {opNOP, ZeroPageX, 2, 4, 0},
	0x55: {opEOR, ZeroPageX, 2, 4, 0},
	0x56: {opLSR, ZeroPageX, 2, 6, 0},
	0x57: {opSRE, ZeroPageX, 2, 6, 0},
	0x58: {opCLI, Implied, 1, 2, 0},
	0x59: {opEOR, AbsoluteY, 3, 4, 1},
	0x5A: {opNOP, Implied, 1, 2, 0},
	0x5B: {opSRE, AbsoluteY, 3, 7, 0},
	0x5C: {opNOP, AbsoluteX, 3, 4, 1},
	0x5D: {opEOR, AbsoluteX, 3, 4, 1},
	0x5E: {opLSR, AbsoluteX, 3, 7, 0},
	0x5F: {opSRE, AbsoluteX, 3, 7, 0},
	0x60: {opRTS, Implied, 1, 6, 0},
	0x61: {opADC, IndexedIndirect, 2, 6, 0},
	0x62: {opKIL, Implied, 1, 2, 0},
	0x63: {opRRA, IndexedIndirect, 2, 8, 0},
	0x64: {opNOP, ZeroPage, 2, 3, 0},
	0x65: {opADC, ZeroPage, 2, 3, 0},
	0x66: {opROR, ZeroPage, 2, 5, 0},
	0x67: {opRRA, ZeroPage, 2, 5, 0},
	0x68: {opPLA, Implied, 1, 4, 0},
	0x69: {opADC, Immediate, 2, 2, 0},
	0x6A: {opROR, Accumulator, 1, 2, 0},
	0x6B: {opARR, Immediate, 2, 2, 0},
	0x6C: {opJMP, Indirect, 3, 5, 0},
	0x6D: {opADC, Absolute, 3, 4, 0},
	0x6E: {opROR, Absolute, 3, 6, 0},
	0x6F: {opRRA, Absolute, 3, 6, 0},
	0x70: {opBVS, Relative, 2, 2, 1},
	0x71: {opADC, IndirectIndexed, 2, 5, 1},
	0x72: {opKIL, Implied, 1, 2, 0},
	0x73: {opRRA, IndirectIndexed, 2, 8, 0},
	0x74: {opNOP, ZeroPageX, 2, 4, 0},
	0x75: {opADC, ZeroPageX, 2, 4, 0},
	0x76: {opROR, ZeroPageX, 2, 6, 0},
	0x77: {opRRA, ZeroPageX, 2, 6, 0},
	0x78: {opSEI, Implied, 1, 2, 0},
	0x79: {opADC, AbsoluteY, 3, 4, 1},
	0x7A: {opNOP, Implied, 1, 2, 0},
	0x7B: {opRRA, AbsoluteY, 3, 7, 0},
	0x7C: {opNOP, AbsoluteX, 3, 4, 1},
	0x7D: {opADC, AbsoluteX, 3, 4, 1},
	0x7E: {opROR, AbsoluteX, 3, 7, 0},
	0x7F: {opRRA, AbsoluteX, 3, 7, 0},
	0x80: {opNOP, Immediate, 2, 2, 0},
	0x81: {opSTA, IndexedIndirect, 2, 6, 0},
	0x82: {opNOP, Immediate, 2, 2, 0},
	0x83: {opSAX, IndexedIndirect, 2, 6, 0},
	0x84: {opSTY, ZeroPage, 2, 3, 0},
	0x85: {opSTA, ZeroPage, 2, 3, 0},
	0x86: {opSTX, ZeroPage, 2, 3, 0},
	0x87: {opSAX, ZeroPage, 2, 3, 0},
	0x88: {opDEY, Implied, 1, 2, 0},
	0x89: {opNOP, Immediate, 2, 2, 0},
	0x8A: {opTXA, Implied, 1, 2, 0},
	0x8B: {opXAA, Immediate, 2, 2, 0},
	0x8C: {opSTY, Absolute, 3, 4, 0},
	0x8D: {opSTA, Absolute, 3, 4, 0},
	0x8E: {opSTX, Absolute, 3, 4, 0},
	0x8F: {opSAX, Absolute, 3, 4, 0},
	0x90: {opBCC, Relative, 2, 2, 1},
	0x91: {opSTA, IndirectIndexed, 2, 6, 0},
	0x92: {opKIL, Implied, 1, 2, 0},
	0x93: {opAHX, IndirectIndexed, 2, 6, 0},
	0x94: {opSTY, ZeroPageX, 2, 4, 0},
	0x95: {opSTA, ZeroPageX, 2, 4, 0},
	0x96: {opSTX, ZeroPageY, 2, 4, 0},
	0x97: {opSAX, ZeroPageY, 2, 4, 0},
	0x98: {opTYA, Implied, 1, 2, 0},
	0x99: {opSTA, AbsoluteY, 3, 5, 0},
	0x9A: {opTXS, Implied, 1, 2, 0},
	0x9B: {opTAS, AbsoluteY, 3, 5, 0},
	0x9C: {opSHY, AbsoluteX, 3, 5, 0},
	0x9D: {opSTA, AbsoluteX, 3, 5, 0},
	0x9E: {opSHX, AbsoluteY, 3, 5, 0},
	0x9F: {opAHX, AbsoluteY, 3, 5, 0},
	0xA0: {opLDY, Immediate, 2, 2, 0},
	0xA1: {opLDA, IndexedIndirect, 2, 6, 0},
	0xA2: {opLDX, Immediate, 2, 2, 0},
	0xA3: {opLAX, IndexedIndirect, 2, 6, 0},
	0xA4: {opLDY, ZeroPage, 2, 3, 0},
	0xA5: {opLDA, ZeroPage, 2, 3, 0},
	0xA6: {opLDX, ZeroPage, 2, 3, 0},
	0xA7: {opLAX, ZeroPage, 2, 3, 0},
	0xA8: {opTAY, Implied, 1, 2, 0},
	0xA9: {opLDA, Immediate, 2, 2, 0},
	0xAA: {opTAX, Implied, 1, 2, 0},
	0xAB: {opLAX, Immediate, 2, 2, 0},
	0xAC: {opLDY, Absolute, 3, 4, 0},
	0xAD: {opLDA, Absolute, 3, 4, 0},
	0xAE: {opLDX, Absolute, 3, 4, 0},
	0xAF: {opLAX, Absolute, 3, 4, 0},
	0xB0: {opBCS, Relative, 2, 2, 1},
	0xB1: {opLDA, IndirectIndexed, 2, 5, 1},
	0xB2: {opKIL, Implied, 1, 2, 0},
	0xB3: {opLAX, IndirectIndexed, 2, 5, 1},
	0xB4: {opLDY, ZeroPageX, 2, 4, 0},
	0xB5: {opLDA, ZeroPageX, 2, 4, 0},
	0xB6: {opLDX, ZeroPageY, 2, 4, 0},
	0xB7: {opLAX, ZeroPageY, 2, 4, 0},
	0xB8: {opCLV, Implied, 1, 2, 0},
	0xB9: {opLDA, AbsoluteY, 3, 4, 1},
	0xBA: {opTSX, Implied, 1, 2, 0},
	0xBB: {opLAS, AbsoluteY, 3, 4, 1},
	0xBC: {opLDY, AbsoluteX, 3, 4, 1},
	0xBD: {opLDA, AbsoluteX, 3, 4, 1},
	0xBE: {opLDX, AbsoluteY, 3, 4, 1},
	0xBF: {opLAX, AbsoluteY, 3, 4, 1},
	0xC0: {opCPY, Immediate, 2, 2, 0},
	0xC1: {opCMP, IndexedIndirect, 2, 6, 0},
	0xC2: {opNOP, Immediate, 2, 2, 0},
	0xC3: {opDCP, IndexedIndirect, 2, 8, 0},
	0xC4: {opCPY, ZeroPage, 2, 3, 0},
	0xC5: {opCMP, ZeroPage, 2, 3, 0},
	0xC6: {opDEC, ZeroPage, 2, 5, 0},
	0xC7: {opDCP, ZeroPage, 2, 5, 0},
	0xC8: {opINY, Implied, 1, 2, 0},
	0xC9: {opCMP, Immediate, 2, 2, 0},
	0xCA: {opDEX, Implied, 1, 2, 0},
	0xCB: {opAXS, Immediate, 2, 2, 0},
	0xCC: {opCPY, Absolute, 3, 4, 0},
	0xCD: {opCMP, Absolute, 3, 4, 0},
	0xCE: {opDEC, Absolute, 3, 6, 0},
	0xCF: {opDCP, Absolute, 3, 6, 0},
	0xD0: {opBNE, Relative, 2, 2, 1},
	0xD1: {opCMP, IndirectIndexed, 2, 5, 1},
	0xD2: {opKIL, Implied, 1, 2, 0},
	0xD3: {opDCP, IndirectIndexed, 2, 8, 0},
	0xD4: {opNOP, ZeroPageX, 2, 4, 0},
	0xD5: {opCMP, ZeroPageX, 2, 4, 0},
	0xD6: {opDEC, ZeroPageX, 2, 6, 0},
	0xD7: {opDCP, ZeroPageX, 2, 6, 0},
	0xD8: {opCLD, Implied, 1, 2, 0},
	0xD9: {opCMP, AbsoluteY, 3, 4, 1},
	0xDA: {opNOP, Implied, 1, 2, 0},
	0xDB: {opDCP, AbsoluteY, 3, 7, 0},
	0xDC: {opNOP, AbsoluteX, 3, 4, 1},
	0xDD: {opCMP, AbsoluteX, 3, 4, 1},
	0xDE: {opDEC, AbsoluteX, 3, 7, 0},
	0xDF: {opDCP, AbsoluteX, 3, 7, 0},
	0xE0: {opCPX, Immediate, 2, 2, 0},
	0xE1: {opSBC, IndexedIndirect, 2, 6, 0},
	0xE2: {opNOP, Immediate, 2, 2, 0},
	0xE3: {opISC, IndexedIndirect, 2, 8, 0},
	0xE4: {opCPX, ZeroPage, 2, 3, 0},
	0xE5: {opSBC, ZeroPage, 2, 3, 0},
	0xE6: {opINC, ZeroPage, 2, 5, 0},
	0xE7: {opISC, ZeroPage, 2, 5, 0},
	0xE8: {opINX, Implied, 1, 2, 0},
	0xE9: {opSBC, Immediate, 2, 2, 0},
	0xEA: {opNOP, Implied, 1, 2, 0},
	0xEB: {opSBC, Immediate, 2, 2, 0},
	0xEC: {opCPX, Absolute, 3, 4, 0},
	0xED: {opSBC, Absolute, 3, 4, 0},
	0xEE: {opINC, Absolute, 3, 6, 0},
	0xEF: {opISC, Absolute, 3, 6, 0},
	0xF0: {opBEQ, Relative, 2, 2, 1},
	0xF1: {opSBC, IndirectIndexed, 2, 5, 1},
	0xF2: {opKIL, Implied, 1, 2, 0},
	0xF3: {opISC, IndirectIndexed, 2, 8, 0},
	0xF4: {opNOP, ZeroPageX, 2, 4, 0},
	0xF5: {opSBC, ZeroPageX, 2, 4, 0},
	0xF6: {opINC, ZeroPageX, 2, 6, 0},
	0xF7: {opISC, ZeroPageX, 2, 6, 0},
	0xF8: {opSED, Implied, 1, 2, 0},
	0xF9: {opSBC, AbsoluteY, 3, 4, 1},
	0xFA: {opNOP, Implied, 1, 2, 0},
	0xFB: {opISC, AbsoluteY, 3, 7, 0},
	0xFC: {opNOP, AbsoluteX, 3, 4, 1},
	0xFD: {opSBC, AbsoluteX, 3, 4, 1},
	0xFE: {opINC, AbsoluteX, 3, 7, 0},
	0xFF: {opISC, AbsoluteX, 3, 7, 0},
}
