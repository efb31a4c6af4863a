package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"restaurant-menu/models"
)

const (
	cbBack      = "menu:back"
	cbAdd       = "menu:add:"
	cbList      = "menu:list:"
	cbDelete    = "menu:del:"
	cbDeleteYes = "menu:delok:"
)

func panelKeyboard() tgbotapi.InlineKeyboardMarkup {
	var addRow, listRow []tgbotapi.InlineKeyboardButton
	for _, c := range models.Categories() {
		addRow = append(addRow, tgbotapi.NewInlineKeyboardButtonData("➕ "+string(c), cbAdd+string(c)))
		listRow = append(listRow, tgbotapi.NewInlineKeyboardButtonData("📋 "+c.Label(), cbList+string(c)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(addRow, listRow)
}

func (b *AdminBot) sendPanel(chatID int64) {
	b.sendWithInline(chatID, renderSummary(b.store, b.currency), panelKeyboard())
}

func (b *AdminBot) sendListCategory(chatID int64, category models.Category) {
	items := b.store.ItemsByCategory(category)
	text := renderCategory(category, items, b.store.AveragePriceByCategory(category), b.currency)
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 Delete %d. %s", i+1, item.DishName), cbDelete+item.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to panel", cbBack),
	))
	b.sendWithInline(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *AdminBot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.From == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	userID := cq.From.ID
	data := cq.Data

	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Debug("answer callback failed", zap.Error(err))
	}
	if !b.isLoggedIn(userID) {
		b.send(chatID, "🔒 Send your password to continue.")
		return
	}

	switch {
	case data == cbBack:
		b.sendPanel(chatID)
	case strings.HasPrefix(data, cbAdd):
		cat, err := models.ParseCategory(strings.TrimPrefix(data, cbAdd))
		if err != nil {
			return
		}
		b.stateMu.Lock()
		b.state[userID] = &addState{Step: "name", Category: cat}
		b.stateMu.Unlock()
		b.send(chatID, fmt.Sprintf("Send the dish name for the new %s (e.g. Grilled Steak). Cancel: /cancel", strings.ToLower(string(cat))))
	case strings.HasPrefix(data, cbList):
		cat, err := models.ParseCategory(strings.TrimPrefix(data, cbList))
		if err != nil {
			return
		}
		b.sendListCategory(chatID, cat)
	case strings.HasPrefix(data, cbDelete):
		id := strings.TrimPrefix(data, cbDelete)
		item, ok := b.store.Item(id)
		if !ok {
			b.send(chatID, "Item is already gone.")
			return
		}
		kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, delete", cbDeleteYes+id),
			tgbotapi.NewInlineKeyboardButtonData("« Keep", cbList+string(item.Category)),
		))
		b.sendWithInline(chatID, fmt.Sprintf("Delete «%s» from %s?", item.DishName, strings.ToLower(item.Category.Label())), kb)
	case strings.HasPrefix(data, cbDeleteYes):
		id := strings.TrimPrefix(data, cbDeleteYes)
		item, ok := b.store.Item(id)
		b.store.RemoveItem(id)
		if !ok {
			b.send(chatID, "Item is already gone.")
			return
		}
		b.send(chatID, fmt.Sprintf("✅ Deleted «%s».", item.DishName))
		b.sendListCategory(chatID, item.Category)
	}
}

// handleAddFlow walks name -> description -> price. Returns false when no flow is active.
func (b *AdminBot) handleAddFlow(chatID, userID int64, text string) bool {
	b.stateMu.Lock()
	st := b.state[userID]
	if st == nil {
		b.stateMu.Unlock()
		return false
	}
	switch st.Step {
	case "name":
		st.DishName = text
		st.Step = "description"
		b.stateMu.Unlock()
		b.send(chatID, fmt.Sprintf("Send a short description for «%s»:", strings.TrimSpace(text)))
		return true
	case "description":
		st.Description = text
		st.Step = "price"
		b.stateMu.Unlock()
		b.send(chatID, fmt.Sprintf("Enter the price in %s:", b.currency))
		return true
	}
	b.stateMu.Unlock()

	item, err := b.store.AddItem(st.Category, st.DishName, st.Description, SanitizePrice(text))
	if err != nil {
		// A bad price keeps the flow at the price step; empty text fields end it.
		if strings.TrimSpace(st.DishName) == "" || strings.TrimSpace(st.Description) == "" {
			b.stateMu.Lock()
			delete(b.state, userID)
			b.stateMu.Unlock()
		}
		b.send(chatID, validationMessage(err))
		return true
	}
	b.stateMu.Lock()
	delete(b.state, userID)
	b.stateMu.Unlock()
	b.send(chatID, fmt.Sprintf("✅ Added %s: %s — %s", strings.ToLower(string(item.Category)), item.DishName, models.FormatPrice(b.currency, item.PriceText())))
	b.sendPanel(chatID)
	return true
}
