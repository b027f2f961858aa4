package recorder

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/event"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/flowhist"
)

// flowScale is how many fractional digits of a decimal volume survive the
// move into the integer flow domain.
const flowScale = 8

// Book is the observation history of one pair: a flowhist ring, the three
// counters addressing it, and the raw volume of the second currently being
// accumulated.
type Book struct {
	Name      string
	Windows   Windows
	Retention time.Duration

	buf             *flowhist.Buffer
	index           uint16
	cardinality     uint16
	cardinalityNext uint16

	pendingBase  decimal.Decimal
	pendingQuote decimal.Decimal

	mx     sync.RWMutex
	Offset int64
}

func NewBook(name string, windows Windows, retention time.Duration) *Book {
	if retention < windows.Max() {
		retention = windows.Max()
	}

	return &Book{
		Name:      name,
		Windows:   windows,
		Retention: retention,
		buf:       flowhist.New(),
	}
}

// Inc folds one trade into the second currently being accumulated. The ring
// is only touched at commit time.
func (b *Book) Inc(trade event.TradeReceived) error {
	b.mx.Lock()
	defer b.mx.Unlock()

	b.pendingBase = b.pendingBase.Add(trade.BaseVolume)
	b.pendingQuote = b.pendingQuote.Add(trade.QuoteVolume)

	if trade.Offset > 0 {
		b.Offset = trade.Offset
	}

	return nil
}

// Commit writes the accumulated second into the ring as one observation. The
// first commit seeds the ring and merges the pending volume into the seed
// slot via the same-timestamp path.
func (b *Book) Commit(now time.Time) error {
	b.mx.Lock()
	defer b.mx.Unlock()

	ts := uint32(now.Unix())

	if b.cardinalityNext == 0 {
		b.cardinality, b.cardinalityNext = b.buf.Initialize(ts)
	}

	b.index, b.cardinality = b.buf.Write(
		b.index, ts,
		scaleVolume(b.pendingBase), scaleVolume(b.pendingQuote),
		b.cardinality, b.cardinalityNext,
	)

	b.pendingBase = decimal.Zero
	b.pendingQuote = decimal.Zero

	return nil
}

// EnsureRetention stretches the ring toward the configured retention. With
// one commit per second the slot count equals retention seconds, plus one
// for the live head.
func (b *Book) EnsureRetention() (bool, error) {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.cardinalityNext == 0 {
		// nothing committed yet
		return false, nil
	}

	target := uint64(b.Retention/time.Second) + 1
	if target > flowhist.MaxCardinality {
		target = flowhist.MaxCardinality
	}

	next, err := b.buf.Grow(b.cardinalityNext, uint16(target))
	if err != nil {
		return false, fmt.Errorf("grow %s: %w", b.Name, err)
	}

	grew := next != b.cardinalityNext
	b.cardinalityNext = next
	return grew, nil
}

// Stats reports the rolling volume of every configured window, each one the
// difference between the live integral and the integral as of the window's
// start. Windows reaching past recorded history are omitted until enough
// observations exist.
func (b *Book) Stats(now time.Time) map[string]entity.WindowVolume {
	b.mx.RLock()
	defer b.mx.RUnlock()

	if b.cardinality == 0 {
		return nil
	}

	ts := uint32(now.Unix())
	stats := make(map[string]entity.WindowVolume, len(b.Windows))

	for name, window := range b.Windows {
		ago := uint32(window / time.Second)

		bases, quotes, err := b.buf.Observe(ts, []uint32{0, ago}, b.index, b.cardinality)
		if err != nil {
			continue
		}

		stats[name] = entity.WindowVolume{
			Base:  unscaleVolume(new(big.Int).Sub(bases[0], bases[1])),
			Quote: unscaleVolume(new(big.Int).Sub(quotes[0], quotes[1])),
		}
	}

	return stats
}

// Observe answers arbitrary lookbacks against the pair's history.
func (b *Book) Observe(now time.Time, secondsAgos []uint32) ([]entity.CumulativePoint, error) {
	b.mx.RLock()
	defer b.mx.RUnlock()

	bases, quotes, err := b.buf.Observe(uint32(now.Unix()), secondsAgos, b.index, b.cardinality)
	if err != nil {
		return nil, fmt.Errorf("observe %s: %w", b.Name, err)
	}

	points := make([]entity.CumulativePoint, len(secondsAgos))
	for i, ago := range secondsAgos {
		points[i] = entity.CumulativePoint{
			SecondsAgo:      ago,
			CumulativeBase:  unscaleVolume(bases[i]),
			CumulativeQuote: unscaleVolume(quotes[i]),
		}
	}

	return points, nil
}

func (b *Book) snapshot() entity.Pair {
	b.mx.RLock()
	defer b.mx.RUnlock()

	windows := make(map[string]time.Duration, len(b.Windows))
	for name, window := range b.Windows {
		windows[name] = window
	}

	slots := make([]entity.Slot, b.buf.Len())
	for i := range slots {
		o := b.buf.At(uint16(i))
		slots[i] = entity.Slot{
			Timestamp:       o.Timestamp,
			CumulativeBase:  o.CumulativeBase,
			CumulativeQuote: o.CumulativeQuote,
			FlowBase:        o.FlowBase,
			FlowQuote:       o.FlowQuote,
			Initialized:     o.Initialized,
		}
	}

	return entity.Pair{
		Name:            b.Name,
		Windows:         windows,
		Index:           b.index,
		Cardinality:     b.cardinality,
		CardinalityNext: b.cardinalityNext,
		Slots:           slots,
		Offset:          b.Offset,
	}
}

func (b *Book) restore(pair entity.Pair) {
	b.mx.Lock()
	defer b.mx.Unlock()

	slots := make([]flowhist.Observation, len(pair.Slots))
	for i, s := range pair.Slots {
		slots[i] = flowhist.Observation{
			Timestamp:       s.Timestamp,
			CumulativeBase:  s.CumulativeBase,
			CumulativeQuote: s.CumulativeQuote,
			FlowBase:        s.FlowBase,
			FlowQuote:       s.FlowQuote,
			Initialized:     s.Initialized,
		}
	}

	b.buf.Restore(slots)
	b.index = pair.Index
	b.cardinality = pair.Cardinality
	b.cardinalityNext = pair.CardinalityNext
	b.Offset = pair.Offset
}

func scaleVolume(v decimal.Decimal) *big.Int {
	return v.Shift(flowScale).BigInt()
}

func unscaleVolume(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -flowScale)
}
