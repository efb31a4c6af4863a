package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant-menu/models"
)

func TestEncodeItems_FieldNames(t *testing.T) {
	item, err := models.NewMenuItem("id-1", models.CategoryMain, "Steak", "Grilled", "120")
	require.NoError(t, err)
	blob, err := encodeItems([]models.MenuItem{item})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"id-1","category":"Main","dishName":"Steak","description":"Grilled","price":"120.00"}]`, string(blob))
}

func TestEncodeItems_Empty(t *testing.T) {
	blob, err := encodeItems(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(blob))

	items, err := decodeItems(blob)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDecodeItems_IgnoresUnknownFields(t *testing.T) {
	items, err := decodeItems([]byte(`[{"id":"1","category":"Starter","dishName":"Soup","description":"Hot","price":"30.00","extra":true}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "30.00", items[0].PriceText())
}
