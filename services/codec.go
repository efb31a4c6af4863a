package services

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"restaurant-menu/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func encodeItems(items []models.MenuItem) ([]byte, error) {
	records := make([]models.MenuRecord, len(items))
	for i, it := range items {
		records[i] = it.Record()
	}
	return json.Marshal(records)
}

// decodeItems parses a persisted blob. Any record that fails validation, or a
// repeated id, rejects the whole blob.
func decodeItems(blob []byte) ([]models.MenuItem, error) {
	var records []models.MenuRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	items := make([]models.MenuItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		item, err := r.Item()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("duplicate id %s", item.ID)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}
