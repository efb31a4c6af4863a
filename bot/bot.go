package bot

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"restaurant-menu/config"
	"restaurant-menu/models"
	"restaurant-menu/services"
)

// sender is the part of *tgbotapi.BotAPI the bot talks through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type addState struct {
	Step        string // "name", "description", "price"
	Category    models.Category
	DishName    string
	Description string
}

// AdminBot lets a logged-in admin add, list and delete menu items per course.
type AdminBot struct {
	tg       *tgbotapi.BotAPI
	api      sender
	store    *services.MenuStore
	log      *zap.Logger
	login    string
	adminID  int64
	currency string
	throttle *services.LoginThrottle

	stateMu  sync.RWMutex
	state    map[int64]*addState
	loggedIn map[int64]bool
}

// New connects to Telegram with TOKEN. Without LOGIN a one-off password is generated.
func New(cfg *config.Config, store *services.MenuStore, logger *zap.Logger) (*AdminBot, error) {
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newAdminBot(api, cfg, store, logger)
	b.tg = api
	if b.login == "" {
		pw, err := services.GenerateAdminPassword()
		if err != nil {
			return nil, fmt.Errorf("generate admin password: %w", err)
		}
		b.login = pw
		// Do not log the password.
		fmt.Fprintln(os.Stderr, "LOGIN not set, admin password for this run:", pw)
	}
	return b, nil
}

func newAdminBot(api sender, cfg *config.Config, store *services.MenuStore, logger *zap.Logger) *AdminBot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminBot{
		api:      api,
		store:    store,
		log:      logger.Named("bot"),
		login:    strings.TrimSpace(cfg.Telegram.Login),
		adminID:  cfg.Telegram.AdminID,
		currency: cfg.Menu.Currency,
		throttle: services.NewLoginThrottle(),
		state:    make(map[int64]*addState),
		loggedIn: make(map[int64]bool),
	}
}

// Start long-polls Telegram until ctx is done.
func (b *AdminBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.log.Info("bot started", zap.String("username", b.tg.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(update)
		}
	}
}

func (b *AdminBot) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if text == "/cancel" {
		b.cancelFlow(chatID, userID)
		return
	}
	if !b.isLoggedIn(userID) {
		b.handleLogin(chatID, userID, text)
		return
	}
	if text == "/start" {
		b.sendPanel(chatID)
		return
	}
	if b.handleAddFlow(chatID, userID, msg.Text) {
		return
	}
	b.sendPanel(chatID)
}

func (b *AdminBot) handleLogin(chatID, userID int64, text string) {
	if text == "/start" || text == "" {
		b.send(chatID, "🔒 Menu admin. Send your password to continue.")
		return
	}
	if wait := b.throttle.WaitSeconds(userID); wait > 0 {
		b.send(chatID, fmt.Sprintf("⏳ Too many attempts. Try again in %d s.", wait))
		return
	}
	if b.login == "" || text != b.login || (b.adminID != 0 && userID != b.adminID) {
		b.throttle.RecordFailed(userID)
		b.log.Warn("admin login failed", zap.Int64("user", userID))
		b.send(chatID, "❌ Wrong password.")
		return
	}
	b.throttle.RecordSuccess(userID)
	b.stateMu.Lock()
	b.loggedIn[userID] = true
	b.stateMu.Unlock()
	b.log.Info("admin logged in", zap.Int64("user", userID))
	b.sendPanel(chatID)
}

func (b *AdminBot) isLoggedIn(userID int64) bool {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.loggedIn[userID]
}

func (b *AdminBot) cancelFlow(chatID, userID int64) {
	b.stateMu.Lock()
	delete(b.state, userID)
	b.stateMu.Unlock()
	b.send(chatID, "✅ Cancelled.")
	if b.isLoggedIn(userID) {
		b.sendPanel(chatID)
	}
}

func (b *AdminBot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (b *AdminBot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}
