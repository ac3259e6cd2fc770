package e2e_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowlang/arrow/compiler"
	"github.com/arrowlang/arrow/vm"
)

// runSource compiles and runs src, returning everything written to
// `print` and the run error, if any.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	env, err := vm.New(vm.Output(&out))
	require.NoError(t, err)
	defer env.Release()

	ch, err := compiler.Compile(src, env)
	require.NoError(t, err)
	env.SetChunk(ch)

	return out.String(), env.Run()
}

func TestInterpretScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic precedence", `print 1 + 2 * 3;`, "7\n"},
		{"string interning equality", `let a = "hi"; let b = "hi"; print a == b;`, "true\n"},
		{"for loop accumulation", `let x = 0; for (let i = 0; i < 3; i += 1) { x += i; } print x;`, "3\n"},
		{"short circuit and", `if (1 < 2 and "x" == "x") print "y"; else print "n";`, "y\n"},
		{"list subscript", `let xs = [10, 20, 30]; print xs[1];`, "20\n"},
		{"shadowing in nested scope", `let a = 1; { let a = 2; print a; } print a;`, "2\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSource(t, tt.src)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestInterpretUndefinedGlobalRead(t *testing.T) {
	_, err := runSource(t, `print a;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'a'")
}

func TestCompileSelfReferentialInitializer(t *testing.T) {
	env, err := vm.New()
	require.NoError(t, err)
	defer env.Release()

	_, err = compiler.Compile(`let a = a;`, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot read variable from its own initializer")
}

func TestCompileDuplicateLocalInSameBlock(t *testing.T) {
	env, err := vm.New()
	require.NoError(t, err)
	defer env.Release()

	_, err = compiler.Compile(`{ let a; let a; }`, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Multiple definitions")
}

// TestCompileErrorWireFormatIsBare pins the exact stderr format a single
// compile error renders as: no go-multierror "N errors occurred" envelope
// around it, just the bare "Error ...." diagnostic.
func TestCompileErrorWireFormatIsBare(t *testing.T) {
	env, err := vm.New()
	require.NoError(t, err)
	defer env.Release()

	_, err = compiler.Compile(`let = 1;`, env)
	require.Error(t, err)
	assert.Equal(t, "Error '=': Expect variable name.", err.Error())
}

func TestMultiDeclarePositionalBinding(t *testing.T) {
	// Regression test for the slot-index bug described in DESIGN.md: in a
	// local scope with a pre-existing local, a multi-name `let` must still
	// bind each initializer to the correct later slot.
	out, err := runSource(t, `{ let first = 100; let a, b = 1, 2; print a; print b; print first; }`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n100\n", out)
}

func TestListIndexOutOfRange(t *testing.T) {
	_, err := runSource(t, `let xs = [1, 2]; print xs[5];`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "List index out of range")
}

func TestCompoundAssignment(t *testing.T) {
	out, err := runSource(t, `let x = 10; x -= 3; x *= 2; print x;`)
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestOrShortCircuit(t *testing.T) {
	out, err := runSource(t, `let x = null; print x or "fallback";`)
	require.NoError(t, err)
	assert.Equal(t, "fallback\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := runSource(t, `print "a" + "b" + "c";`)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)
}

func TestEmptyListPrint(t *testing.T) {
	out, err := runSource(t, `let xs = []; print xs;`)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}
