package disasm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowlang/arrow/compiler"
	"github.com/arrowlang/arrow/internal/disasm"
	"github.com/arrowlang/arrow/vm"
)

func TestChunkDisassembly(t *testing.T) {
	env, err := vm.New()
	require.NoError(t, err)
	defer env.Release()

	ch, err := compiler.Compile(`print 1 + 2;`, env)
	require.NoError(t, err)

	var buf bytes.Buffer
	disasm.Chunk(ch, "test", &buf)

	out := buf.String()
	assert.True(t, strings.Contains(out, "== test =="))
	assert.True(t, strings.Contains(out, "OP_CONSTANT"))
	assert.True(t, strings.Contains(out, "OP_ADD"))
	assert.True(t, strings.Contains(out, "OP_PRINT"))
	assert.True(t, strings.Contains(out, "OP_RETURN"))
}
