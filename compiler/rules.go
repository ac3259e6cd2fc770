package compiler

import (
	"strconv"

	"github.com/arrowlang/arrow/internal/lexer"
	"github.com/arrowlang/arrow/internal/trace"
	"github.com/arrowlang/arrow/internal/value"
	"github.com/arrowlang/arrow/vm"
)

// precedence is the Pratt ladder, low to high.
type precedence int

const (
	precNone precedence = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFn func(c *Compiler, assignable bool)

type rule struct {
	prefix  parseFn
	infix   parseFn
	rbp     precedence
}

// rules is indexed by lexer.Kind; each entry is {prefix-fn, infix-fn,
// rbp}. A flat table keeps expression dispatch data-driven, matching how
// the grammar is described rather than spreading it across a method per
// token kind.
var rules [lexer.KindCount]rule

func init() {
	rules[lexer.TokLeftParen] = rule{prefix: parseGroup}
	rules[lexer.TokLeftBracket] = rule{prefix: parseList, infix: parseSubscript, rbp: precCall}

	rules[lexer.TokPlus] = rule{infix: parseBinary, rbp: precTerm}
	rules[lexer.TokMinus] = rule{prefix: parseUnary, infix: parseBinary, rbp: precTerm}
	rules[lexer.TokStar] = rule{infix: parseBinary, rbp: precFactor}
	rules[lexer.TokSlash] = rule{infix: parseBinary, rbp: precFactor}
	rules[lexer.TokBang] = rule{prefix: parseUnary}
	rules[lexer.TokBangEqual] = rule{infix: parseBinary, rbp: precEquality}
	rules[lexer.TokEqualEqual] = rule{infix: parseBinary, rbp: precEquality}
	rules[lexer.TokLess] = rule{infix: parseBinary, rbp: precComparison}
	rules[lexer.TokLessEqual] = rule{infix: parseBinary, rbp: precComparison}
	rules[lexer.TokGreater] = rule{infix: parseBinary, rbp: precComparison}
	rules[lexer.TokGreaterEqual] = rule{infix: parseBinary, rbp: precComparison}
	rules[lexer.TokAnd] = rule{infix: parseAnd, rbp: precAnd}
	rules[lexer.TokOr] = rule{infix: parseOr, rbp: precOr}

	rules[lexer.TokIdentifier] = rule{prefix: parseIdent}
	rules[lexer.TokString] = rule{prefix: parseString}
	rules[lexer.TokNumber] = rule{prefix: parseNumber}
	rules[lexer.TokTrue] = rule{prefix: parseLiteral}
	rules[lexer.TokFalse] = rule{prefix: parseLiteral}
	rules[lexer.TokNull] = rule{prefix: parseLiteral}
}

// expression parses at the lowest real precedence (above None), so
// assignment is the top-level expression form.
func (c *Compiler) expression() {
	c.parsePrecedence(precAssign)
}

// parsePrecedence is parse_expr(lbp): invoke the prefix rule of the next
// token, then keep consuming infix operators whose rbp exceeds lbp.
// assignable propagates lbp <= precAssign so identifier-prefix only
// accepts a trailing '=' (or compound form) when not nested inside a
// tighter-binding context; this is what makes `a * b = c` a syntax error.
func (c *Compiler) parsePrecedence(lbp precedence) {
	c.advance()
	prefix := rules[c.previous.Kind].prefix
	if prefix == nil {
		c.error("Expected an expression")
		return
	}
	assignable := lbp <= precAssign
	prefix(c, assignable)

	for lbp < rules[c.current.Kind].rbp {
		c.advance()
		infix := rules[c.previous.Kind].infix
		infix(c, assignable)
	}
}

func parseGroup(c *Compiler, _ bool) {
	c.expression()
	c.consume(lexer.TokRightParen, "Incomplete Set of () seen")
}

func parseNumber(c *Compiler, _ bool) {
	n, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(value.Number(n))
}

func parseString(c *Compiler, _ bool) {
	// Strip the surrounding quotes before interning.
	raw := c.previous.Lexeme
	s := c.intern.InternBytes([]byte(raw[1 : len(raw)-1]))
	c.emitConstant(value.Obj(s))
}

func parseLiteral(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case lexer.TokTrue:
		c.emitOp(vm.OpTrue)
	case lexer.TokFalse:
		c.emitOp(vm.OpFalse)
	case lexer.TokNull:
		c.emitOp(vm.OpNull)
	}
}

func parseUnary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch opKind {
	case lexer.TokMinus:
		c.emitOp(vm.OpNegate)
	case lexer.TokBang:
		c.emitOp(vm.OpNot)
	}
}

// parseBinary parses the RHS at the operator's own rbp (not rbp+1): this
// still yields left-associativity because parsePrecedence's loop
// condition is strict (`lbp < rbp`), so a run of same-precedence operators
// folds left one at a time.
func parseBinary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(rules[opKind].rbp)
	switch opKind {
	case lexer.TokPlus:
		c.emitOp(vm.OpAdd)
	case lexer.TokMinus:
		c.emitOp(vm.OpSubtract)
	case lexer.TokStar:
		c.emitOp(vm.OpMultiply)
	case lexer.TokSlash:
		c.emitOp(vm.OpDivide)
	case lexer.TokLess:
		c.emitOp(vm.OpLess)
	case lexer.TokGreater:
		c.emitOp(vm.OpGreater)
	case lexer.TokEqualEqual:
		c.emitOp(vm.OpEqual)
	case lexer.TokLessEqual:
		c.emitOp(vm.OpGreater)
		c.emitOp(vm.OpNot)
	case lexer.TokGreaterEqual:
		c.emitOp(vm.OpLess)
		c.emitOp(vm.OpNot)
	case lexer.TokBangEqual:
		c.emitOp(vm.OpEqual)
		c.emitOp(vm.OpNot)
	}
}

// parseAnd: short-circuit without popping the tested value. If the first
// operand is false, control jumps past the second operand (the false
// value itself is the result); otherwise the first value is popped and
// the second operand is evaluated in its place.
func parseAnd(c *Compiler, _ bool) {
	endJump := c.emitJump(vm.OpJumpIfFalse)
	c.emitOp(vm.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// parseOr: if the first operand is false, fall through to evaluate the
// second; otherwise jump past it, keeping the truthy first value.
func parseOr(c *Compiler, _ bool) {
	elseJump := c.emitJump(vm.OpJumpIfFalse)
	endJump := c.emitJump(vm.OpJump)

	c.patchJump(elseJump)
	c.emitOp(vm.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func parseList(c *Compiler, _ bool) {
	count := 0
	if !c.check(lexer.TokRightBracket) {
		for {
			c.expression()
			count++
			if !c.match(lexer.TokComma) {
				break
			}
		}
	}
	c.consume(lexer.TokRightBracket, "Expect ']' after list elements")
	c.emitByte(byte(vm.OpBuildList))
	c.emit16(count)
	trace.Emit(vm.OpBuildList.Mnemonic(), true, count)
}

func parseSubscript(c *Compiler, _ bool) {
	c.expression()
	c.consume(lexer.TokRightBracket, "Expect ']' after subscript index")
	c.emitOp(vm.OpSubscript)
}

// resolveLocal scans the locals table from the innermost entry outward,
// returning its slot index, or -1 if name is not a local (treat as global).
func (c *Compiler) resolveLocal(name string) int {
	for i := c.localCount - 1; i >= 0; i-- {
		l := &c.locals[i]
		if l.name == name {
			if l.activeOn == -1 {
				c.error("Cannot read variable from its own initializer")
			}
			return i
		}
	}
	return -1
}

func parseIdent(c *Compiler, assignable bool) {
	name := c.previous.Lexeme
	var getOp, setOp vm.Op
	idx := c.resolveLocal(name)
	if idx != -1 {
		getOp, setOp = vm.OpGetLocal, vm.OpSetLocal
	} else {
		idx = int(c.identifierConstant(name))
		getOp, setOp = vm.OpGetGlobal, vm.OpSetGlobal
	}

	switch {
	case assignable && c.match(lexer.TokEqual):
		c.expression()
		c.emitOpOperand(setOp, byte(idx))
	case assignable && c.match(lexer.TokPlusEqual):
		c.compoundAssign(getOp, setOp, byte(idx), vm.OpAdd)
	case assignable && c.match(lexer.TokMinusEqual):
		c.compoundAssign(getOp, setOp, byte(idx), vm.OpSubtract)
	case assignable && c.match(lexer.TokStarEqual):
		c.compoundAssign(getOp, setOp, byte(idx), vm.OpMultiply)
	case assignable && c.match(lexer.TokSlashEqual):
		c.compoundAssign(getOp, setOp, byte(idx), vm.OpDivide)
	default:
		c.emitOpOperand(getOp, byte(idx))
	}
}

// compoundAssign implements `+= -= *= /=`: read, parse RHS, apply op,
// write back. The read-modify-write is not atomic at the bytecode level,
// which is harmless since the VM is single-threaded.
func (c *Compiler) compoundAssign(getOp, setOp vm.Op, idx byte, op vm.Op) {
	c.emitOpOperand(getOp, idx)
	c.expression()
	c.emitOp(op)
	c.emitOpOperand(setOp, idx)
}
