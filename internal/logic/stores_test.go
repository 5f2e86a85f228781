package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockhub/internal/domain"
)

func TestMemoryOptionStore(t *testing.T) {
	var store OptionStore = NewMemoryOptionStore()

	options := []domain.Option{{"id": 1, "name": "Main Warehouse"}}
	store.SetOptions(domain.SourceBranches, options)
	options[0] = domain.Option{"id": 9}

	got := store.GetOptions(domain.SourceBranches)
	assert.Equal(t, 1, got[0]["id"], "store keeps its own copy")

	store.MarkFallback(domain.SourceBranches, true)
	assert.True(t, store.IsFallback(domain.SourceBranches))
	assert.Len(t, store.GetAllOptions(), 1)

	store.RemoveOptions(domain.SourceBranches)
	assert.Nil(t, store.GetOptions(domain.SourceBranches))
	assert.False(t, store.IsFallback(domain.SourceBranches))
}
