package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_InternIsGapFreeAndMonotone(t *testing.T) {
	v := NewVocabulary()

	id0 := v.Intern("cat")
	id1 := v.Intern("dog")
	id2 := v.Intern("cat") // repeat

	assert.Equal(t, uint32(0), id0)
	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, id0, id2, "re-interning an existing term must return the same id")
	assert.Equal(t, 2, v.Len())
}

func TestVocabulary_LookupAndByID(t *testing.T) {
	v := NewVocabulary()
	id := v.Intern("fox")

	entry, ok := v.Lookup("fox")
	require.True(t, ok)
	assert.Equal(t, id, entry.TermID)
	assert.Nil(t, entry.PostingStartOffset)
	assert.Nil(t, entry.DocCountWithTerm)

	term, ok := v.ByID(id)
	require.True(t, ok)
	assert.Equal(t, "fox", term)

	_, ok = v.ByID(999)
	assert.False(t, ok)

	_, ok = v.Lookup("never-seen")
	assert.False(t, ok)
}

func TestVocabulary_SetMetadata(t *testing.T) {
	v := NewVocabulary()
	v.Intern("fox")

	v.SetMetadata("fox", 120, 3)

	entry, ok := v.GetMetadata("fox")
	require.True(t, ok)
	require.NotNil(t, entry.PostingStartOffset)
	require.NotNil(t, entry.DocCountWithTerm)
	assert.Equal(t, int64(120), *entry.PostingStartOffset)
	assert.Equal(t, uint32(3), *entry.DocCountWithTerm)
}

func TestVocabulary_SetMetadataOnUnknownTermIsNoop(t *testing.T) {
	v := NewVocabulary()
	v.SetMetadata("ghost", 10, 1)
	_, ok := v.GetMetadata("ghost")
	assert.False(t, ok)
}

func TestVocabulary_MarkFirstOffsetSetsOnceAndCounts(t *testing.T) {
	v := NewVocabulary()
	v.Intern("fox")

	v.markFirstOffset("fox", 24)
	v.markFirstOffset("fox", 48)
	v.markFirstOffset("fox", 72)

	entry, ok := v.GetMetadata("fox")
	require.True(t, ok)
	require.NotNil(t, entry.PostingStartOffset)
	assert.Equal(t, int64(24), *entry.PostingStartOffset, "first offset seen must stick")
	require.NotNil(t, entry.DocCountWithTerm)
	assert.Equal(t, uint32(3), *entry.DocCountWithTerm)
}

func TestVocabulary_Terms(t *testing.T) {
	v := NewVocabulary()
	v.Intern("cat")
	v.Intern("dog")
	v.Intern("fox")

	assert.Equal(t, []string{"cat", "dog", "fox"}, v.Terms())
}
