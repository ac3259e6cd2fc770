package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowlang/arrow/internal/lexer"
)

func tokenize(src string) []lexer.Token {
	l := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.TokEOF {
			return toks
		}
	}
}

func kinds(toks []lexer.Token) []lexer.Kind {
	ks := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := tokenize("let proc printer print x for foo")
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.TokLet, lexer.TokProc, lexer.TokIdentifier, lexer.TokPrint,
		lexer.TokIdentifier, lexer.TokFor, lexer.TokIdentifier, lexer.TokEOF,
	}
	assert.Equal(t, want, got)
}

func TestCompoundOperators(t *testing.T) {
	toks := tokenize("+= -= *= /= == <= >= !=")
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.TokPlusEqual, lexer.TokMinusEqual, lexer.TokStarEqual, lexer.TokSlashEqual,
		lexer.TokEqualEqual, lexer.TokLessEqual, lexer.TokGreaterEqual, lexer.TokBangEqual,
		lexer.TokEOF,
	}
	require.Equal(t, want, got)
}

func TestNumberLiteral(t *testing.T) {
	toks := tokenize("3.14 42")
	require.Len(t, toks, 3)
	assert.Equal(t, "3.14", toks[0].Lexeme)
	assert.Equal(t, "42", toks[1].Lexeme)
}

func TestUnterminatedStringIsError(t *testing.T) {
	toks := tokenize(`"abc`)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.TokError, toks[0].Kind)
	assert.Equal(t, "Unterminated String", toks[0].Lexeme)
}

func TestRawNewlineInStringIsError(t *testing.T) {
	// The error token stops at the newline; `def` then lexes as an
	// identifier and the trailing `"` as a second unterminated string.
	toks := tokenize("\"abc\ndef\"")
	require.Len(t, toks, 4)
	assert.Equal(t, lexer.TokError, toks[0].Kind)
}

func TestUnexpectedCharacter(t *testing.T) {
	toks := tokenize("@")
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.TokError, toks[0].Kind)
	assert.Equal(t, "Unexpected Character", toks[0].Lexeme)
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	toks := tokenize("# a comment\nlet x = 1;")
	got := kinds(toks)
	want := []lexer.Kind{
		lexer.TokLet, lexer.TokIdentifier, lexer.TokEqual, lexer.TokNumber,
		lexer.TokSemicolon, lexer.TokEOF,
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 2, toks[0].Line)
}

func TestLineTracking(t *testing.T) {
	toks := tokenize("let a = 1;\nlet b = 2;")
	assert.Equal(t, 1, toks[0].Line)
	// find the second `let`
	for _, tok := range toks[5:] {
		if tok.Kind == lexer.TokLet {
			assert.Equal(t, 2, tok.Line)
			return
		}
	}
	t.Fatal("second let not found")
}
