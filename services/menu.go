package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant-menu/models"
	"restaurant-menu/storage"
)

// NoData is what AveragePriceByCategory returns for a category without items.
const NoData = "no data"

var errPersisterClosed = errors.New("menu store closed")

const (
	stateIdle = iota
	stateLoading
	stateReady
)

// MenuStore owns the menu collection. Mutations apply in memory first and are
// then handed to a background writer, so durability is eventually consistent:
// reads always see the latest in-memory state, storage catches up.
type MenuStore struct {
	adapter storage.Adapter
	key     string
	log     *zap.Logger
	newID   func() string

	mu    sync.RWMutex
	items []models.MenuItem
	state int

	writer *persister
}

// NewMenuStore creates an empty store that persists under key. Call Initialize
// to load what was saved previously and Close to flush on shutdown.
func NewMenuStore(adapter storage.Adapter, key string, logger *zap.Logger) *MenuStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("menu")
	return &MenuStore{
		adapter: adapter,
		key:     key,
		log:     logger,
		newID:   uuid.NewString,
		writer:  newPersister(adapter, key, logger),
	}
}

// Initialize loads the saved collection. A missing, unreadable or corrupt blob
// leaves the store empty; the store is ready afterwards either way. Calls made
// while a load is running or after it finished do nothing.
func (s *MenuStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != stateIdle {
		s.mu.Unlock()
		return
	}
	s.state = stateLoading
	s.mu.Unlock()

	loaded := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Items added before the load finished go after the saved ones. They were
	// not persisted yet, so save the merged collection now.
	early := len(s.items) > 0
	s.items = append(loaded, s.items...)
	s.state = stateReady
	if early {
		s.persistLocked()
	}
	s.log.Info("menu loaded", zap.Int("items", len(s.items)))
}

func (s *MenuStore) load(ctx context.Context) []models.MenuItem {
	blob, err := s.adapter.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("read saved menu failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	items, err := decodeItems(blob)
	if err != nil {
		s.log.Warn("saved menu is corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return items
}

func (s *MenuStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateReady
}

// AddItem validates the fields and appends a new item. On a validation error
// (models.ErrMissingFields, models.ErrInvalidPrice, models.ErrUnknownCategory)
// nothing changes and nothing is persisted.
func (s *MenuStore) AddItem(category models.Category, dishName, description, rawPrice string) (models.MenuItem, error) {
	item, err := models.NewMenuItem(s.newID(), category, dishName, description, rawPrice)
	if err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.persistLocked()
	s.log.Info("menu item added",
		zap.String("id", item.ID),
		zap.String("category", string(item.Category)),
		zap.String("price", item.PriceText()))
	return item, nil
}

// RemoveItem deletes the item with id. Unknown ids are ignored.
func (s *MenuStore) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID != id {
			continue
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.persistLocked()
		s.log.Info("menu item removed", zap.String("id", id))
		return
	}
}

// persistLocked snapshots the collection for the background writer. Must hold s.mu
// so snapshots are enqueued in mutation order. Nothing is written before the
// saved collection has been loaded, otherwise it would be overwritten.
func (s *MenuStore) persistLocked() {
	if s.state != stateReady {
		return
	}
	blob, err := encodeItems(s.items)
	if err != nil {
		s.log.Error("encode menu failed", zap.Error(err))
		return
	}
	s.writer.enqueue(blob)
}

// Item returns the item with id.
func (s *MenuStore) Item(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// Items returns a copy of the whole collection in insertion order.
func (s *MenuStore) Items() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem{}, s.items...)
}

// ItemsByCategory returns the items of one category in insertion order.
func (s *MenuStore) ItemsByCategory(category models.Category) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MenuItem{}
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// AveragePrice returns the mean price of a category rounded to two digits.
// ok is false when the category has no items.
func (s *MenuStore) AveragePrice(category models.Category) (avg decimal.Decimal, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	n := int64(0)
	for _, it := range s.items {
		if it.Category == category {
			sum = sum.Add(it.Price)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(n)).Round(2), true
}

// AveragePriceByCategory renders AveragePrice with two digits, or NoData.
func (s *MenuStore) AveragePriceByCategory(category models.Category) string {
	avg, ok := s.AveragePrice(category)
	if !ok {
		return NoData
	}
	return avg.StringFixed(2)
}

// Flush blocks until every mutation made so far has been written (or failed)
// and returns the error of the latest write.
func (s *MenuStore) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close writes any pending snapshot and stops the background writer. The
// adapter itself is left open.
func (s *MenuStore) Close(ctx context.Context) error {
	return s.writer.close(ctx)
}
