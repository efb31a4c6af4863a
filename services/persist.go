package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"restaurant-menu/storage"
)

// persister writes menu snapshots in the background. Only the newest pending
// snapshot is written; older ones are dropped because every snapshot is the
// full collection.
type persister struct {
	adapter storage.Adapter
	key     string
	log     *zap.Logger

	mu        sync.Mutex
	pending   []byte
	seq       uint64 // snapshots enqueued
	attempted uint64 // newest seq handed to the adapter
	lastErr   error
	settled   chan struct{} // closed and replaced after every write attempt

	kick    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newPersister(adapter storage.Adapter, key string, log *zap.Logger) *persister {
	p := &persister{
		adapter: adapter,
		key:     key,
		log:     log,
		settled: make(chan struct{}),
		kick:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) enqueue(blob []byte) {
	p.mu.Lock()
	p.seq++
	p.pending = blob
	p.mu.Unlock()
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.kick:
			p.writeLatest()
		case <-p.quit:
			p.writeLatest()
			return
		}
	}
}

func (p *persister) writeLatest() {
	p.mu.Lock()
	blob, seq := p.pending, p.seq
	if seq == p.attempted {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	err := p.adapter.Set(context.Background(), p.key, blob)
	if err != nil {
		p.log.Warn("persist menu failed", zap.String("key", p.key), zap.Uint64("seq", seq), zap.Error(err))
	} else {
		p.log.Debug("menu persisted", zap.String("key", p.key), zap.Uint64("seq", seq), zap.Int("bytes", len(blob)))
	}

	p.mu.Lock()
	p.attempted = seq
	p.lastErr = err
	close(p.settled)
	p.settled = make(chan struct{})
	p.mu.Unlock()
}

// flush waits until every snapshot enqueued before the call has been attempted
// and returns the error of the latest attempt.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.seq
	p.mu.Unlock()
	for {
		p.mu.Lock()
		if p.attempted >= target {
			err := p.lastErr
			p.mu.Unlock()
			return err
		}
		ch := p.settled
		p.mu.Unlock()

		select {
		case <-ch:
		case <-p.stopped:
			p.mu.Lock()
			done := p.attempted >= target
			p.mu.Unlock()
			if !done {
				return errPersisterClosed
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *persister) close(ctx context.Context) error {
	p.once.Do(func() { close(p.quit) })
	select {
	case <-p.stopped:
		p.mu.Lock()
		err := p.lastErr
		p.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
