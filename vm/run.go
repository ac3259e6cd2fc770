package vm

import (
	"fmt"

	"github.com/arrowlang/arrow/internal/trace"
	"github.com/arrowlang/arrow/internal/value"
)

// runtimeError formats a VM error the way `print` formats values, following
// the "Runtime Error: <message>." wire format.
type runtimeError struct {
	msg string
}

func (e *runtimeError) Error() string { return "Runtime Error: " + e.msg + "." }

func rtErrorf(format string, args ...interface{}) *runtimeError {
	return &runtimeError{msg: fmt.Sprintf(format, args...)}
}

func (i *Instance) push(v value.Value) {
	i.stack = append(i.stack, v)
}

func (i *Instance) pop() value.Value {
	n := len(i.stack) - 1
	v := i.stack[n]
	i.stack = i.stack[:n]
	return v
}

func (i *Instance) peek(distance int) value.Value {
	return i.stack[len(i.stack)-1-distance]
}

func (i *Instance) readByte() byte {
	b := i.chunk.Code[i.ip]
	i.ip++
	return b
}

// readOffset decodes a 16-bit big-endian jump/loop/list-build operand.
func (i *Instance) readOffset() int {
	hi := i.readByte()
	lo := i.readByte()
	return int(hi)<<8 | int(lo)
}

// Run decodes and executes the bound chunk from offset 0. It returns a
// *runtimeError (via the error interface) on the first failing opcode,
// having already cleared the eval stack; any other error indicates a
// corrupt chunk and should not occur for compiler-emitted bytecode.
func (i *Instance) Run() error {
	i.ip = 0
	for {
		trace.Stack(i.ip, len(i.stack))
		op := Op(i.readByte())
		switch op {
		case OpConstant:
			idx := i.readByte()
			i.push(i.chunk.Constants[idx])

		case OpNull:
			i.push(value.Null())
		case OpTrue:
			i.push(value.Bool(true))
		case OpFalse:
			i.push(value.Bool(false))

		case OpPop:
			i.pop()

		case OpGetLocal:
			slot := i.readByte()
			i.push(i.stack[slot])
		case OpSetLocal:
			slot := i.readByte()
			i.stack[slot] = i.peek(0)

		case OpGetGlobal:
			name := i.chunk.Constants[i.readByte()].AsString()
			v, ok := i.globals.Get(name)
			if !ok {
				return i.fail(rtErrorf("Undefined variable '%s'", name.Bytes))
			}
			i.push(v)

		case OpDefineGlobal:
			name := i.chunk.Constants[i.readByte()].AsString()
			i.globals.Set(name, i.pop())

		case OpSetGlobal:
			name := i.chunk.Constants[i.readByte()].AsString()
			if i.globals.Set(name, i.peek(0)) {
				// Set reports true for a newly inserted entry: the name was
				// absent, so the probe's insertion is rolled back.
				i.globals.Delete(name)
				return i.fail(rtErrorf("Undefined variable '%s'", name.Bytes))
			}

		case OpEqual:
			b := i.pop()
			a := i.pop()
			i.push(value.Bool(value.Equal(a, b)))

		case OpGreater, OpLess:
			if err := i.numericCompare(op); err != nil {
				return i.fail(err)
			}

		case OpAdd:
			if err := i.add(); err != nil {
				return i.fail(err)
			}
		case OpSubtract, OpMultiply, OpDivide:
			if err := i.numericBinary(op); err != nil {
				return i.fail(err)
			}

		case OpNot:
			i.push(value.Bool(i.pop().Falsey()))
		case OpNegate:
			v := i.peek(0)
			if !v.IsNumber() {
				return i.fail(rtErrorf("Operand must be a number"))
			}
			i.pop()
			i.push(value.Number(-v.AsNumber()))

		case OpPrint:
			fmt.Fprintln(i.output, value.Format(i.pop()))

		case OpJump:
			offset := i.readOffset()
			i.ip += offset
		case OpJumpIfFalse:
			offset := i.readOffset()
			if i.peek(0).Falsey() {
				i.ip += offset
			}
		case OpLoop:
			offset := i.readOffset()
			i.ip -= offset

		case OpBuildList:
			n := i.readOffset()
			elems := make([]value.Value, n)
			copy(elems, i.stack[len(i.stack)-n:])
			i.stack = i.stack[:len(i.stack)-n]
			i.push(value.Obj(i.NewList(elems)))

		case OpSubscript:
			idxV := i.pop()
			listV := i.pop()
			if !listV.IsList() {
				return i.fail(rtErrorf("Operand must be a list"))
			}
			if !idxV.IsNumber() {
				return i.fail(rtErrorf("Index must be a number"))
			}
			l := listV.AsList()
			idx := int(idxV.AsNumber())
			if idx < 0 || idx >= len(l.Elems) {
				return i.fail(rtErrorf("List index out of range"))
			}
			i.push(l.Elems[idx])

		case OpReturn:
			return nil

		default:
			return i.fail(rtErrorf("Unknown opcode %d", op))
		}
	}
}

// fail implements the fail-fast policy: the eval stack is cleared and the
// error is returned to the caller, which reports it to standard error.
func (i *Instance) fail(err *runtimeError) error {
	i.stack = i.stack[:0]
	trace.RuntimeError(err)
	return err
}

func (i *Instance) numericCompare(op Op) *runtimeError {
	b := i.peek(0)
	a := i.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return rtErrorf("Operands must be numbers")
	}
	i.pop()
	i.pop()
	switch op {
	case OpGreater:
		i.push(value.Bool(a.AsNumber() > b.AsNumber()))
	case OpLess:
		i.push(value.Bool(a.AsNumber() < b.AsNumber()))
	}
	return nil
}

func (i *Instance) numericBinary(op Op) *runtimeError {
	b := i.peek(0)
	a := i.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return rtErrorf("Operands must be numbers")
	}
	i.pop()
	i.pop()
	an, bn := a.AsNumber(), b.AsNumber()
	switch op {
	case OpSubtract:
		i.push(value.Number(an - bn))
	case OpMultiply:
		i.push(value.Number(an * bn))
	case OpDivide:
		i.push(value.Number(an / bn))
	}
	return nil
}

// add implements the dual string-concatenation/numeric-addition semantics:
// if either operand is a string, the result concatenates their textual
// content (interned); otherwise both must be numbers.
func (i *Instance) add() *runtimeError {
	b := i.peek(0)
	a := i.peek(1)
	switch {
	case a.IsString() || b.IsString():
		i.pop()
		i.pop()
		concat := append(append([]byte{}, stringBytes(a)...), stringBytes(b)...)
		i.push(value.Obj(i.InternBytes(concat)))
		return nil
	case a.IsNumber() && b.IsNumber():
		i.pop()
		i.pop()
		i.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil
	default:
		return rtErrorf("Operands must be two numbers or two strings")
	}
}

func stringBytes(v value.Value) []byte {
	if v.IsString() {
		return v.AsString().Bytes
	}
	return []byte(value.Format(v))
}
