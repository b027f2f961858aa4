package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/event"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/metrics"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/ebus"
)

// Recorder is the single writer of all observation books. Trades arrive
// through the event bus, get parked in their pair's pending second, and a
// ticker commits one observation per second per pair.
type Recorder struct {
	mx sync.RWMutex

	pairs map[string]*Book

	restorer Restorer
	restored chan struct{}

	eBus    *ebus.EBus
	metrics *metrics.Metrics
}

type Restorer interface {
	LastState(context.Context) (entity.State, error)
	Store(context.Context, entity.State) error
}

func NewRecorder(rest Restorer, eBus *ebus.EBus, m *metrics.Metrics) *Recorder {
	return &Recorder{
		pairs:    make(map[string]*Book),
		restored: make(chan struct{}),
		eBus:     eBus,
		restorer: rest,
		metrics:  m,
	}
}

func (r *Recorder) AddBook(book *Book) *Recorder {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.pairs[book.Name] = book
	return r
}

func (r *Recorder) HandleTrade(ctx context.Context, trade event.TradeReceived) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.restored:
	}

	r.mx.RLock()
	defer r.mx.RUnlock()

	book, ok := r.pairs[trade.Pair]
	if !ok {
		return fmt.Errorf("pair %s not found", trade.Pair)
	}

	if trade.Offset <= book.Offset {
		// skip restored trades
		_ = r.eBus.Emit(ctx, event.TradeSkipped{Offset: trade.Offset})
		return nil
	}

	if err := book.Inc(trade); err != nil {
		return fmt.Errorf("failed to inc book %s: %w", trade.Pair, err)
	}

	return nil
}

func (r *Recorder) Run(ctx context.Context) error {
	state, err := r.restorer.LastState(ctx)
	if err != nil {
		return fmt.Errorf("restorer state: %w", err)
	}

	if err := r.Restore(state); err != nil {
		return fmt.Errorf("restorer restore: %w", err)
	}

	_ = r.eBus.Emit(ctx, event.StateRestored{Offset: state.Offset})

	commitTicker := time.NewTicker(time.Second)
	defer commitTicker.Stop()

	stateTicker := time.NewTicker(time.Second * 5)
	defer stateTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-commitTicker.C:
			if err := r.commit(now); err != nil {
				return err
			}
		case <-stateTicker.C:
			currentState := r.State()
			if err := r.restorer.Store(ctx, currentState); err != nil {
				return fmt.Errorf("restorer store: %w", err)
			}

			err = r.eBus.Emit(ctx, event.StateSaved{
				Offset: currentState.Offset,
			})
			if err != nil {
				return fmt.Errorf("ebus emit: %w", err)
			}
		}
	}
}

func (r *Recorder) commit(now time.Time) error {
	r.mx.RLock()
	defer r.mx.RUnlock()

	started := time.Now()

	for _, book := range r.pairs {
		if err := book.Commit(now); err != nil {
			return fmt.Errorf("commit book %s: %w", book.Name, err)
		}
		r.metrics.WritesTotal.WithLabelValues(book.Name).Inc()

		grew, err := book.EnsureRetention()
		if err != nil {
			return fmt.Errorf("retention book %s: %w", book.Name, err)
		}
		if grew {
			r.metrics.GrowsTotal.Inc()
		}
	}

	r.metrics.CommitDur.Observe(time.Since(started).Seconds())
	return nil
}

func (r *Recorder) Stats() map[string]map[string]entity.WindowVolume {
	r.mx.RLock()
	defer r.mx.RUnlock()

	now := time.Now()
	stats := make(map[string]map[string]entity.WindowVolume)

	for _, book := range r.pairs {
		stats[book.Name] = book.Stats(now)
	}

	return stats
}

// Observe is the read side handed to the web layer: point-in-time lookbacks
// against one pair's history.
func (r *Recorder) Observe(pair string, secondsAgos []uint32) ([]entity.CumulativePoint, error) {
	r.mx.RLock()
	book, ok := r.pairs[pair]
	r.mx.RUnlock()

	if !ok {
		return nil, fmt.Errorf("pair %s not found", pair)
	}

	r.metrics.QueriesTotal.Inc()

	points, err := book.Observe(time.Now(), secondsAgos)
	if err != nil {
		r.metrics.QueryErrors.Inc()
		return nil, err
	}

	return points, nil
}

func (r *Recorder) State() entity.State {
	r.mx.RLock()
	defer r.mx.RUnlock()

	state := entity.State{
		Pairs: map[string]entity.Pair{},
	}

	for _, book := range r.pairs {
		state.Pairs[book.Name] = book.snapshot()

		if book.Offset > state.Offset {
			state.Offset = book.Offset
		}
	}

	return state
}

func (r *Recorder) Restore(state entity.State) error {
	defer close(r.restored)

	r.mx.Lock()
	defer r.mx.Unlock()

	for _, pair := range state.Pairs {
		book, ok := r.pairs[pair.Name]
		if !ok {
			// a pair dropped from the config keeps its history until retired
			book = NewBook(pair.Name, Windows(pair.Windows), 0)
			r.pairs[pair.Name] = book
		}

		book.restore(pair)
	}

	return nil
}
