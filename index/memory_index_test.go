package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndex_AddFuseAndFinalize(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add("cat", 0))
	require.NoError(t, m.Add("cat", 0))
	require.NoError(t, m.Add("dog", 0))
	require.NoError(t, m.Add("cat", 1))
	require.NoError(t, m.Finalize(2))

	occ, err := m.Occurrences("cat")
	require.NoError(t, err)
	require.Len(t, occ, 2)
	assert.Equal(t, uint32(0), occ[0].DocID)
	assert.Equal(t, uint32(2), occ[0].TermFreq)
	assert.Equal(t, uint32(1), occ[1].DocID)

	assert.Equal(t, uint32(2), m.DocumentCountWithTerm("cat"))
	assert.Equal(t, uint32(1), m.DocumentCountWithTerm("dog"))
	assert.Equal(t, uint32(0), m.DocumentCountWithTerm("ghost"))
	assert.Equal(t, uint32(2), m.DocumentCount())
}

func TestMemoryIndex_AddAfterFinalizeFails(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Finalize(0))
	assert.ErrorIs(t, m.Add("cat", 0), ErrInvalidState)
}

func TestMemoryIndex_FinalizeTwiceFails(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Finalize(0))
	assert.ErrorIs(t, m.Finalize(0), ErrInvalidState)
}
