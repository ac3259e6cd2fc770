package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowlang/arrow/internal/table"
	"github.com/arrowlang/arrow/internal/value"
)

func str(s string) *value.String {
	return value.NewString([]byte(s), table.FNV1a([]byte(s)))
}

func TestSetGetDelete(t *testing.T) {
	tbl := table.New(8)
	k := str("name")

	isNew := tbl.Set(k, value.Number(1))
	assert.True(t, isNew)

	v, ok := tbl.Get(k)
	require.True(t, ok)
	assert.Equal(t, 1.0, v.AsNumber())

	isNew = tbl.Set(k, value.Number(2))
	assert.False(t, isNew, "updating an existing key is not a new insertion")

	ok = tbl.Delete(k)
	assert.True(t, ok)

	_, ok = tbl.Get(k)
	assert.False(t, ok)
}

func TestDeleteThenProbeThroughTombstone(t *testing.T) {
	tbl := table.New(8)
	a, b := str("a"), str("b")
	tbl.Set(a, value.Bool(true))
	tbl.Set(b, value.Bool(true))

	require.True(t, tbl.Delete(a))

	// b must still be reachable: its probe sequence may pass through a's
	// tombstone, which must not terminate the search early.
	_, ok := tbl.Get(b)
	assert.True(t, ok)
}

func TestFindStringByContent(t *testing.T) {
	tbl := table.New(8)
	k := str("hello")
	tbl.Set(k, value.Bool(true))

	found := tbl.FindString([]byte("hello"), table.FNV1a([]byte("hello")))
	require.NotNil(t, found)
	assert.Same(t, k, found)

	assert.Nil(t, tbl.FindString([]byte("nope"), table.FNV1a([]byte("nope"))))
}

func TestGrowsPastLoadFactor(t *testing.T) {
	tbl := table.New(8)
	for i := 0; i < 100; i++ {
		k := str(string(rune('a' + i%26)) + string(rune(i)))
		tbl.Set(k, value.Number(float64(i)))
	}
	assert.Equal(t, 100, tbl.Count())
}
