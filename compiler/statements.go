package compiler

import (
	"github.com/arrowlang/arrow/internal/lexer"
	"github.com/arrowlang/arrow/vm"
)

// declaration is the top of the statement grammar: a `let` binding, a
// block, or a bare statement. On a compile error it syncs to the next
// statement boundary so the rest of the file still gets checked.
func (c *Compiler) declaration() {
	switch {
	case c.match(lexer.TokLet):
		c.varDeclaration()
	case c.match(lexer.TokLeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.statement()
	}
	if c.panicMode {
		c.sync()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.match(lexer.TokPrint):
		c.printStatement()
	case c.match(lexer.TokIf):
		c.ifStatement()
	case c.match(lexer.TokWhile):
		c.whileStatement()
	case c.match(lexer.TokFor):
		c.forStatement()
	case c.match(lexer.TokLeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(lexer.TokSemicolon, "Expect ';' after expression")
	c.emitOp(vm.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.TokSemicolon, "Expect ';' after expression")
	c.emitOp(vm.OpPop)
}

func (c *Compiler) block() {
	for !c.check(lexer.TokRightBrace) && !c.check(lexer.TokEOF) {
		c.declaration()
	}
	c.consume(lexer.TokRightBrace, "Expect '}' after block")
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

// endScope closes the current scope, emitting one Pop per local that was
// visible only at this depth, in reverse declaration order.
func (c *Compiler) endScope() {
	c.scopeDepth--
	for c.localCount > 0 && c.locals[c.localCount-1].activeOn > c.scopeDepth {
		c.emitOp(vm.OpPop)
		c.localCount--
	}
}

// ifStatement: emit condition; jump-if-false past the then-branch; Pop the
// condition; then-branch; jump past the else-branch; patch; Pop the
// condition again for the else arm; else-branch if present. The twin Pops
// on the two arms balance the condition value.
func (c *Compiler) ifStatement() {
	c.consume(lexer.TokLeftParen, "Expect '(' after 'if'")
	c.expression()
	c.consume(lexer.TokRightParen, "Expect ')' after condition")

	thenJump := c.emitJump(vm.OpJumpIfFalse)
	c.emitOp(vm.OpPop)
	c.statement()

	elseJump := c.emitJump(vm.OpJump)
	c.patchJump(thenJump)
	c.emitOp(vm.OpPop)

	if c.match(lexer.TokElse) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)
	c.consume(lexer.TokLeftParen, "Expect '(' after 'while'")
	c.expression()
	c.consume(lexer.TokRightParen, "Expect ')' after condition")

	exitJump := c.emitJump(vm.OpJumpIfFalse)
	c.emitOp(vm.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(vm.OpPop)
}

// forStatement desugars `for (init; cond; update) body` so the stream
// executes init once, then loops (cond, body, update). update is compiled
// before body but wired in after it: a forward jump skips straight to
// body, and the loop-back from body lands on update instead of cond,
// which then loops back to cond itself.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(lexer.TokLeftParen, "Expect '(' after 'for'")

	switch {
	case c.match(lexer.TokSemicolon):
		// no initializer
	case c.match(lexer.TokLet):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1
	if !c.check(lexer.TokSemicolon) {
		c.expression()
		c.consume(lexer.TokSemicolon, "Expect ';' after loop condition")
		exitJump = c.emitJump(vm.OpJumpIfFalse)
		c.emitOp(vm.OpPop)
	} else {
		c.consume(lexer.TokSemicolon, "Expect ';' after loop condition")
	}

	if !c.check(lexer.TokRightParen) {
		bodyJump := c.emitJump(vm.OpJump)
		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emitOp(vm.OpPop)
		c.consume(lexer.TokRightParen, "Expect ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(lexer.TokRightParen, "Expect ')' after for clauses")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(vm.OpPop)
	}

	c.endScope()
}
