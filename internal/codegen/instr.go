// Package codegen implements the register-machine code-generation pass of
// spec §4.5: the typed, storage-lowered AST is walked once in source order
// and turned into a textual instruction stream, each instruction reading
// named operands and writing a destination register.
//
// Grounded on the teacher's internal/vm: that package's Opcode enum +
// Chunk{Code, Constants, Lines} + Disassemble() shape is a stack machine
// emitting binary bytecode. This package keeps the same "flat instruction
// list plus a disassembler" structure but switches the unit from a binary
// opcode to a textual Instr record and from stack slots to named
// registers, since spec §4.5 specifies the output as a register-addressed
// textual stream, not a binary format.
package codegen

import (
	"fmt"
	"strings"
)

// Reg is a function-local destination register, numbered sequentially
// from r0 (spec §4.5 "Registers are numbered sequentially per function").
type Reg int

func (r Reg) String() string { return fmt.Sprintf("r%d", int(r)) }

// Instr is one instruction: an opcode name, its operand texts, an optional
// destination register (absent for side-effecting ops like set/remove/
// await), and an optional trailing type annotation (cast's "as <type>").
type Instr struct {
	Op    string
	Args  []string
	Dests []string
	As    string
}

func (i Instr) String() string {
	var b strings.Builder
	b.WriteString(i.Op)
	for _, a := range i.Args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	if len(i.Dests) > 0 {
		b.WriteString(" into ")
		b.WriteString(strings.Join(i.Dests, ", "))
	}
	if i.As != "" {
		b.WriteString(" as ")
		b.WriteString(i.As)
	}
	b.WriteByte(';')
	return b.String()
}

// Chunk is one function's compiled instruction stream.
type Chunk struct {
	Instrs []Instr
}

// Disassemble renders a Chunk the way the teacher's vm.Disassemble renders
// a Chunk: one instruction per line under a named header.
func Disassemble(c *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for _, in := range c.Instrs {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}
