package cpu

import (
	"fmt"
	"strings"
)

func hex16(v uint16) string {
	return fmt.Sprintf("%04X", v)
}

// TraceLine renders the instruction at PC plus the current register snapshot
// in the reference trace format used for conformance testing: the register
// field starts at column 48 so lines can be compared against nestest logs.
func (c *CPU) TraceLine() string {
	opcode := c.mem.Read(c.PC)
	inst := instructions[opcode]

	// Missing operand bytes are padded to keep the register field at a
	// fixed column for every instruction length.
	data1, data2 := "  ", "  "
	if inst.length >= 2 {
		data1 = fmt.Sprintf("%02X", c.mem.Read(c.PC+1))
	}
	if inst.length >= 3 {
		data2 = fmt.Sprintf("%02X", c.mem.Read(c.PC+2))
	}

	return fmt.Sprintf("%04X  %02X %s %s  %s%sA:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.PC, opcode, data1, data2, inst.kind, strings.Repeat(" ", 29),
		c.A, c.X, c.Y, c.GetStatusByte(), c.SP)
}
