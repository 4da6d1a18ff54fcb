package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarkov-price-sync/internal/domain/entities"
)

func TestNewWithDefaults_ContainsTrackedItem(t *testing.T) {
	c := NewWithDefaults()

	item, found := c.Lookup(TrackedItemID)
	require.True(t, found)
	assert.Equal(t, "Physical Bitcoin", item.Name)
	assert.Positive(t, item.BasePrice)
}

func TestLookup_MissingItem(t *testing.T) {
	c := New()

	item, found := c.Lookup(TrackedItemID)
	assert.False(t, found)
	assert.Nil(t, item)
}

func TestAdd_ReplacesExistingRecord(t *testing.T) {
	c := New()
	c.Add(entities.NewItem("abc", "First", "1st", 100))
	c.Add(entities.NewItem("abc", "Second", "2nd", 200))

	item, found := c.Lookup("abc")
	require.True(t, found)
	assert.Equal(t, "Second", item.Name)
	assert.Equal(t, 1, c.Size())
}

func TestAdd_IgnoresNil(t *testing.T) {
	c := New()
	c.Add(nil)
	assert.Equal(t, 0, c.Size())
}
