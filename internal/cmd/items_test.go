package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/output"
)

type memoryItemStore struct {
	items []core.Item
	err   error
}

func (m *memoryItemStore) ListItems(ctx context.Context) ([]core.Item, error) {
	return m.items, m.err
}

func (m *memoryItemStore) ListItemsByType(ctx context.Context, itemType core.ItemType) ([]core.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []core.Item
	for _, item := range m.items {
		if item.Type == itemType {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryItemStore) SaveItem(ctx context.Context, input core.ItemInput) (*core.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item := core.Item{ID: int64(len(m.items) + 1), Type: input.Type, Description: input.Description}
	m.items = append(m.items, item)
	return &item, nil
}

func (m *memoryItemStore) DeleteItem(ctx context.Context, id int64) (bool, error) {
	return m.err == nil, m.err
}

func TestRenderItemsFiltersByType(t *testing.T) {
	db := &memoryItemStore{items: []core.Item{
		{ID: 1, Type: core.ItemTypePrefix, Description: "Sun"},
		{ID: 2, Type: core.ItemTypeSuffix, Description: "flower"},
	}}

	rendered, err := renderItems(context.Background(), db, "prefixe", output.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, rendered, "Sun")
	assert.NotContains(t, rendered, "flower")

	rendered, err = renderItems(context.Background(), db, "", output.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, rendered, "flower")
}

func TestRenderItemsUnknownTypeIsEmpty(t *testing.T) {
	db := &memoryItemStore{items: []core.Item{{ID: 1, Type: core.ItemTypePrefix, Description: "Sun"}}}

	rendered, err := renderItems(context.Background(), db, "infix", output.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, rendered)
}

func TestRenderItemsPropagatesStoreError(t *testing.T) {
	_, err := renderItems(context.Background(), &memoryItemStore{err: errors.New("locked")}, "", output.FormatTable)
	require.EqualError(t, err, "locked")
}

func TestAddItemNormalizesType(t *testing.T) {
	db := &memoryItemStore{}

	item, err := addItem(context.Background(), db, "Suffix", "  flower ")
	require.NoError(t, err)
	assert.Equal(t, core.ItemTypeSuffix, item.Type)
	// the store owns description trimming
	assert.Equal(t, "  flower ", item.Description)

	_, err = addItem(context.Background(), db, "word", "flower")
	require.Error(t, err)
	assert.Len(t, db.items, 1)
}

func TestItemsCommandTree(t *testing.T) {
	names := make([]string, 0)
	for _, sub := range itemsCmd.Commands() {
		names = append(names, strings.Fields(sub.Use)[0])
	}
	assert.ElementsMatch(t, []string{"list", "add", "rm"}, names)
}
