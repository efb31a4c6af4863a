package models

import (
	"fmt"
	"strings"
)

// MenuRecord is the persisted shape of a MenuItem. Price is kept as two-digit text.
type MenuRecord struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	DishName    string   `json:"dishName"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
}

func (m MenuItem) Record() MenuRecord {
	return MenuRecord{
		ID:          m.ID,
		Category:    m.Category,
		DishName:    m.DishName,
		Description: m.Description,
		Price:       m.PriceText(),
	}
}

// Item converts a stored record back into a MenuItem, rejecting records that
// would not have passed validation when they were created.
func (r MenuRecord) Item() (MenuItem, error) {
	if strings.TrimSpace(r.ID) == "" {
		return MenuItem{}, fmt.Errorf("record without id")
	}
	item, err := NewMenuItem(r.ID, r.Category, r.DishName, r.Description, r.Price)
	if err != nil {
		return MenuItem{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return item, nil
}
