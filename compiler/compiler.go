// Package compiler implements the single-pass Pratt parser that reads
// tokens left to right and emits bytecode directly into a chunk.Chunk,
// with no intermediate syntax tree. Local-variable resolution and
// control-flow patching happen inline as tokens are consumed.
package compiler

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/arrowlang/arrow/internal/chunk"
	"github.com/arrowlang/arrow/internal/lexer"
	"github.com/arrowlang/arrow/internal/value"
	"github.com/arrowlang/arrow/vm"
)

// maxLocals is the fixed capacity of the locals array. Local slot indices
// are emitted as a single byte, which could address up to 256 slots; this
// limit is smaller than that.
const maxLocals = 16

// local tracks one declared name's visibility. activeOn is -1 while the
// name is declared but its initializer has not yet finished (so its own
// name cannot be read inside it); otherwise it is the scope depth at
// which the name became visible.
type local struct {
	name     string
	activeOn int
}

// Interner is implemented by the VM environment a compiled chunk will run
// in: string literals are interned through it so that compile-time
// constants and run-time concatenation results share one handle space.
type Interner interface {
	InternBytes([]byte) *value.String
}

// Compiler parses one source buffer into one chunk.Chunk.
type Compiler struct {
	lex    *lexer.Lexer
	chunk  *chunk.Chunk
	intern Interner

	previous lexer.Token
	current  lexer.Token

	hadError   bool
	panicMode  bool
	errs       *multierror.Error

	locals     [maxLocals]local
	localCount int
	scopeDepth int
}

// Compile parses src and emits into a fresh chunk.Chunk, interning string
// constants through intern. It returns the chunk and nil on success, or a
// non-nil error (a *multierror.Error, possibly wrapping several
// diagnostics) if any compile error occurred; on error the partially
// emitted chunk must not be executed.
func Compile(src string, intern Interner) (*chunk.Chunk, error) {
	c := &Compiler{
		lex:    lexer.New(src),
		chunk:  chunk.New(),
		intern: intern,
	}
	c.advance()
	for !c.match(lexer.TokEOF) {
		c.declaration()
	}
	c.emitOp(vm.OpReturn)
	if c.hadError {
		c.errs.ErrorFormat = joinErrors
		return nil, c.errs.ErrorOrNil()
	}
	return c.chunk, nil
}

// joinErrors renders accumulated diagnostics one per line with no
// go-multierror envelope, so a single compile error still prints as the
// bare "Error ...." wire format instead of "1 error occurred: ...".
func joinErrors(es []error) string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.Next()
		if c.current.Kind != lexer.TokError {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k lexer.Kind) bool { return c.current.Kind == k }

func (c *Compiler) match(k lexer.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k lexer.Kind, descr string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(descr)
}

// errorAt records a diagnostic in the wire format `Error [at end, |
// 'lexeme': ] <description>.`. Further errors are suppressed while in
// panic mode, matching the batching policy: the pipeline keeps walking to
// EOF for better diagnostics but will not execute the result.
func (c *Compiler) errorAt(tok *lexer.Token, descr string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	var where string
	switch {
	case tok.Kind == lexer.TokEOF:
		where = "at end, "
	case tok.Kind == lexer.TokError:
		where = ""
	default:
		where = fmt.Sprintf("'%s': ", tok.Lexeme)
	}
	c.errs = multierror.Append(c.errs, fmt.Errorf("Error %s%s.", where, descr))
	c.hadError = true
}

func (c *Compiler) errorAtCurrent(descr string) { c.errorAt(&c.current, descr) }
func (c *Compiler) error(descr string)          { c.errorAt(&c.previous, descr) }

// sync recovers from a compile error by discarding tokens until a
// statement boundary (after a ';' or at a statement-leading keyword), so
// the remainder of the file can still be checked for further errors.
func (c *Compiler) sync() {
	c.panicMode = false
	for c.current.Kind != lexer.TokEOF {
		if c.previous.Kind == lexer.TokSemicolon {
			return
		}
		switch c.current.Kind {
		case lexer.TokLet, lexer.TokFor, lexer.TokWhile, lexer.TokIf, lexer.TokPrint, lexer.TokReturn:
			return
		}
		c.advance()
	}
}
