package compiler

import (
	"github.com/arrowlang/arrow/internal/lexer"
	"github.com/arrowlang/arrow/vm"
)

// declareLocal registers name as a new local, refusing redeclaration
// within the same scope (scanning backward while the scanned entry is
// still visible at a depth >= the current one).
func (c *Compiler) declareLocal(name string) {
	if c.scopeDepth == 0 {
		return
	}
	for i := c.localCount - 1; i >= 0; i-- {
		l := &c.locals[i]
		if l.activeOn != -1 && l.activeOn < c.scopeDepth {
			break
		}
		if l.name == name {
			c.error("Multiple definitions of the same variable exists")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if c.localCount == maxLocals {
		c.error("Too many local variables in a function")
		return
	}
	c.locals[c.localCount] = local{name: name, activeOn: -1}
	c.localCount++
}

// parseVariableName consumes an identifier and either records it as a
// local (returning constIdx 0, since a local has no constant-pool entry)
// or interns it into the constant pool for a global (returning its
// constant index and localSlot -1). The returned localSlot, when the name
// was recorded as a local, is the index the name occupies in the locals
// table.
func (c *Compiler) parseVariableName(errDescr string) (constIdx byte, localSlot int) {
	c.consume(lexer.TokIdentifier, errDescr)
	name := c.previous.Lexeme
	if c.scopeDepth > 0 {
		slot := c.localCount
		c.declareLocal(name)
		return 0, slot
	}
	return c.identifierConstant(name), -1
}

func (c *Compiler) markLocalInitialized(slot int) {
	if slot >= c.localCount {
		// addLocal refused the name (too many locals) and already
		// reported the error; there is no entry to mark.
		return
	}
	c.locals[slot].activeOn = c.scopeDepth
}

// defineVariable completes a binding: at local scope it marks the local
// active (the value is already sitting on the stack at that slot, so
// nothing is emitted); at global scope it emits Define_Global, which pops
// the value and stores it under the interned name.
func (c *Compiler) defineVariable(constIdx byte, localSlot int) {
	if c.scopeDepth > 0 {
		c.markLocalInitialized(localSlot)
		return
	}
	c.emitOpOperand(vm.OpDefineGlobal, constIdx)
}

// varDeclaration parses `let a, b, c = e1, e2, e3;` (or without `=`, a
// single Null per name). Names and initializers are positional and
// element-wise: the k-th initializer defines the k-th declared name.
//
// The original implementation reused the declaration-order index as the
// local slot, which is only correct when no locals existed before the
// `let`; this version records each name's true slot as it is declared and
// binds by that slot instead.
func (c *Compiler) varDeclaration() {
	type binding struct {
		constIdx  byte
		localSlot int
	}
	var names []binding

	constIdx, slot := c.parseVariableName("Expect variable name")
	names = append(names, binding{constIdx, slot})
	for c.match(lexer.TokComma) {
		constIdx, slot := c.parseVariableName("Expect variable name")
		names = append(names, binding{constIdx, slot})
	}

	if c.match(lexer.TokEqual) {
		c.expression()
		c.defineVariable(names[0].constIdx, names[0].localSlot)
		for i := 1; i < len(names) && c.match(lexer.TokComma); i++ {
			c.expression()
			c.defineVariable(names[i].constIdx, names[i].localSlot)
		}
	} else {
		for _, n := range names {
			c.emitOp(vm.OpNull)
			c.defineVariable(n.constIdx, n.localSlot)
		}
	}
	c.consume(lexer.TokSemicolon, "Expect ';' after expression")
}
