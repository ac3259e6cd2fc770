package compiler

import (
	"github.com/arrowlang/arrow/internal/trace"
	"github.com/arrowlang/arrow/internal/value"
	"github.com/arrowlang/arrow/vm"
)

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitBytes(a, b byte) {
	c.emitByte(a)
	c.emitByte(b)
}

func (c *Compiler) emitOp(op vm.Op) {
	c.emitByte(byte(op))
	trace.Emit(op.Mnemonic(), false, 0)
}

func (c *Compiler) emitOpOperand(op vm.Op, operand byte) {
	c.emitByte(byte(op))
	c.emitByte(operand)
	trace.Emit(op.Mnemonic(), true, int(operand))
}

// emitConstant adds val to the constant pool and emits OpConstant idx,
// reporting an error if the pool is already full.
func (c *Compiler) emitConstant(val value.Value) {
	idx, ok := c.chunk.AddConstant(val)
	if !ok {
		c.error("Constant count > max constants count.. not allowed")
		return
	}
	c.emitOpOperand(vm.OpConstant, byte(idx))
}

// identifierConstant interns name's text and adds it to the constant pool,
// returning its index (without emitting anything).
func (c *Compiler) identifierConstant(name string) byte {
	s := c.intern.InternBytes([]byte(name))
	idx, ok := c.chunk.AddConstant(value.Obj(s))
	if !ok {
		c.error("Constant count > max constants count.. not allowed")
		return 0
	}
	return byte(idx)
}

// emitJump writes op followed by two placeholder bytes and returns the
// offset of the first placeholder, to be back-filled by patchJump.
func (c *Compiler) emitJump(op vm.Op) int {
	c.emitByte(byte(op))
	c.emitByte(0xff)
	c.emitByte(0xff)
	trace.Emit(op.Mnemonic(), false, 0)
	return len(c.chunk.Code) - 2
}

// patchJump back-fills the placeholder at offset with the distance from
// just past the placeholder to the current end of the stream.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk.Code) - offset - 2
	if jump > 0xffff {
		c.error("Cannot Jump that Far")
		return
	}
	c.chunk.Code[offset] = byte(jump >> 8)
	c.chunk.Code[offset+1] = byte(jump)
	trace.Emit("patch jump", true, jump)
}

// emitLoop emits OpLoop with a backward offset to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitByte(byte(vm.OpLoop))
	jump := len(c.chunk.Code) - loopStart + 2
	if jump > 0xffff {
		c.error("Loop body too large")
		return
	}
	c.emitByte(byte(jump >> 8))
	c.emitByte(byte(jump))
	trace.Emit(vm.OpLoop.Mnemonic(), true, jump)
}

// emit16 writes a big-endian 16-bit operand, used by OpBuildList.
func (c *Compiler) emit16(n int) {
	c.emitByte(byte(n >> 8))
	c.emitByte(byte(n))
}
