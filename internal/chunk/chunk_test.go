package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arrowlang/arrow/internal/chunk"
	"github.com/arrowlang/arrow/internal/value"
)

func TestWriteAndLineAt(t *testing.T) {
	c := chunk.New()
	c.Write(1, 10)
	c.Write(2, 10)
	c.Write(3, 11)

	assert.Equal(t, 10, c.LineAt(0))
	assert.Equal(t, 10, c.LineAt(1))
	assert.Equal(t, 11, c.LineAt(2))
	assert.Equal(t, -1, c.LineAt(3))
}

func TestAddConstantRespectsLimit(t *testing.T) {
	c := chunk.New()
	for i := 0; i < chunk.MaxConstants; i++ {
		_, ok := c.AddConstant(value.Number(float64(i)))
		assert.True(t, ok)
	}
	_, ok := c.AddConstant(value.Number(999))
	assert.False(t, ok, "the 257th constant must be refused")
}
