package bot

import (
	"errors"
	"fmt"
	"strings"

	"restaurant-menu/models"
	"restaurant-menu/services"
)

// SanitizePrice keeps what a price field would accept as the user types: digits
// and decimal separators. A comma is read as a dot. Extra separators are kept so
// the price is rejected rather than silently changed.
func SanitizePrice(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteByte('.')
		}
	}
	return b.String()
}

// validationMessage turns a core validation error into text for the admin.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrMissingFields):
		return "⚠️ Please fill in all fields."
	case errors.Is(err, models.ErrInvalidPrice):
		return "⚠️ Please enter a valid price (e.g. 45.50)."
	case errors.Is(err, models.ErrUnknownCategory):
		return "⚠️ Unknown course."
	}
	return "Failed to add: " + err.Error()
}

// renderCategory builds the list screen text for one course.
func renderCategory(category models.Category, items []models.MenuItem, average, currency string) string {
	if len(items) == 0 {
		return fmt.Sprintf("No %s on the menu yet.", strings.ToLower(category.Label()))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s — tap Delete to remove:\n\n", category.Label())
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s — %s\n   %s\n", i+1, item.DishName, models.FormatPrice(currency, item.PriceText()), item.Description)
	}
	b.WriteString("\nAverage price: ")
	if average == services.NoData {
		b.WriteString(average)
	} else {
		b.WriteString(models.FormatPrice(currency, average))
	}
	return b.String()
}

// renderSummary is the panel header: item count and average per course.
func renderSummary(store *services.MenuStore, currency string) string {
	var b strings.Builder
	b.WriteString("📋 Menu admin\n\n")
	for _, c := range models.Categories() {
		avg := store.AveragePriceByCategory(c)
		if avg != services.NoData {
			avg = models.FormatPrice(currency, avg)
		}
		fmt.Fprintf(&b, "%s: %d items, average %s\n", c.Label(), len(store.ItemsByCategory(c)), avg)
	}
	b.WriteString("\nChoose an action below:")
	return b.String()
}
