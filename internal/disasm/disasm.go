// Package disasm renders a compiled chunk's bytecode stream in human
// readable form, one instruction per line: offset, source line, mnemonic,
// and operand.
package disasm

import (
	"fmt"
	"io"

	"github.com/arrowlang/arrow/internal/chunk"
	"github.com/arrowlang/arrow/internal/value"
	"github.com/arrowlang/arrow/vm"
)

// Chunk writes every instruction in c to w, prefixed by name.
func Chunk(c *chunk.Chunk, name string, w io.Writer) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = Instruction(c, offset, w)
	}
}

// Instruction disassembles the single instruction at offset to w and
// returns the offset of the next instruction.
func Instruction(c *chunk.Chunk, offset int, w io.Writer) (next int) {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := vm.Op(c.Code[offset])
	switch op {
	case vm.OpConstant, vm.OpGetLocal, vm.OpSetLocal,
		vm.OpGetGlobal, vm.OpDefineGlobal, vm.OpSetGlobal:
		return byteInstruction(c, op, offset, w)
	case vm.OpJump, vm.OpJumpIfFalse, vm.OpLoop:
		return jumpInstruction(c, op, offset, w)
	case vm.OpBuildList:
		return countInstruction(c, op, offset, w)
	default:
		fmt.Fprintln(w, op.Mnemonic())
		return offset + 1
	}
}

func byteInstruction(c *chunk.Chunk, op vm.Op, offset int, w io.Writer) int {
	idx := c.Code[offset+1]
	line := fmt.Sprintf("%-18s %4d", op.Mnemonic(), idx)
	if op == vm.OpConstant || op == vm.OpGetGlobal || op == vm.OpDefineGlobal || op == vm.OpSetGlobal {
		if int(idx) < len(c.Constants) {
			line += " '" + value.Format(c.Constants[idx]) + "'"
		}
	}
	fmt.Fprintln(w, line)
	return offset + 2
}

func jumpInstruction(c *chunk.Chunk, op vm.Op, offset int, w io.Writer) int {
	hi, lo := c.Code[offset+1], c.Code[offset+2]
	jumpOffset := int(hi)<<8 | int(lo)
	sign := 1
	if op == vm.OpLoop {
		sign = -1
	}
	target := offset + 3 + sign*jumpOffset
	fmt.Fprintf(w, "%-18s %4d -> %d\n", op.Mnemonic(), offset, target)
	return offset + 3
}

func countInstruction(c *chunk.Chunk, op vm.Op, offset int, w io.Writer) int {
	hi, lo := c.Code[offset+1], c.Code[offset+2]
	count := int(hi)<<8 | int(lo)
	fmt.Fprintf(w, "%-18s %4d\n", op.Mnemonic(), count)
	return offset + 3
}
