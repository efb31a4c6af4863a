package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryStarter Category = "Starter"
	CategoryMain    Category = "Main"
	CategoryDesert  Category = "Desert"
)

var (
	ErrMissingFields   = errors.New("missing fields")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrUnknownCategory = errors.New("unknown category")
)

// Categories returns the fixed menu sections in display order.
func Categories() []Category {
	return []Category{CategoryStarter, CategoryMain, CategoryDesert}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDesert:
		return true
	}
	return false
}

// Label is the plural heading used by list screens.
func (c Category) Label() string {
	switch c {
	case CategoryStarter:
		return "Starters"
	case CategoryMain:
		return "Mains"
	case CategoryDesert:
		return "Deserts"
	}
	return string(c)
}

// ParseCategory matches text against the fixed categories ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

type MenuItem struct {
	ID          string
	Category    Category
	DishName    string
	Description string
	Price       decimal.Decimal
}

// PriceText renders the price with exactly two fractional digits.
func (m MenuItem) PriceText() string {
	return m.Price.StringFixed(2)
}

// maxPriceDigits bounds the integer and fraction parts of a price.
const maxPriceDigits = 18

// ParsePrice parses raw price text into a non-negative amount rounded half away
// from zero to two digits. Empty text is ErrMissingFields; anything else that is
// not plain decimal notation (digits with an optional fraction) is ErrInvalidPrice.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrMissingFields
	}
	if !plainDecimal(raw) {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d.Round(2), nil
}

// plainDecimal reports whether s is digits[.digits] with each part at most
// maxPriceDigits long. Exponents and signs are rejected.
func plainDecimal(s string) bool {
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !digitsOnly(intPart) || (hasDot && !digitsOnly(frac)) {
		return false
	}
	return len(intPart) <= maxPriceDigits && len(frac) <= maxPriceDigits
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewMenuItem validates the user supplied fields and builds an item with the given id.
// Text fields are trimmed. Empty text or price is reported before a malformed price.
func NewMenuItem(id string, category Category, dishName, description, rawPrice string) (MenuItem, error) {
	if !category.Valid() {
		return MenuItem{}, ErrUnknownCategory
	}
	dishName = strings.TrimSpace(dishName)
	description = strings.TrimSpace(description)
	if dishName == "" || description == "" || strings.TrimSpace(rawPrice) == "" {
		return MenuItem{}, ErrMissingFields
	}
	price, err := ParsePrice(rawPrice)
	if err != nil {
		return MenuItem{}, err
	}
	return MenuItem{
		ID:          id,
		Category:    category,
		DishName:    dishName,
		Description: description,
		Price:       price,
	}, nil
}

// FormatPrice prefixes a two-digit amount with the display currency symbol.
func FormatPrice(currency, amount string) string {
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}
