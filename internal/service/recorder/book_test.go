package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/event"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/metrics"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/ebus"
)

func filledBook(t *testing.T) (*Book, time.Time) {
	t.Helper()

	book := NewBook("ETH-USDT", Windows{"1s": time.Second, "10s": time.Second * 10}, time.Second*30)

	t0 := time.Unix(1000, 0)

	trade := event.TradeReceived{Trade: entity.Trade{
		Pair:        "ETH-USDT",
		BaseVolume:  decimal.NewFromInt(10),
		QuoteVolume: decimal.NewFromInt(100),
	}}
	assert.NoError(t, book.Inc(trade))
	assert.NoError(t, book.Commit(t0))

	grew, err := book.EnsureRetention()
	assert.NoError(t, err)
	assert.True(t, grew)

	trade.BaseVolume = decimal.NewFromInt(5)
	trade.QuoteVolume = decimal.NewFromInt(50)
	assert.NoError(t, book.Inc(trade))
	assert.NoError(t, book.Commit(t0.Add(time.Second)))

	// a quiet second still commits, with zero flow
	assert.NoError(t, book.Commit(t0.Add(time.Second*2)))

	return book, t0.Add(time.Second * 2)
}

func TestBookWindowStats(t *testing.T) {
	book, now := filledBook(t)

	stats := book.Stats(now)

	assert.Equal(t, "5", stats["1s"].Base.String())
	assert.Equal(t, "50", stats["1s"].Quote.String())

	// not enough history for the long window yet
	_, ok := stats["10s"]
	assert.False(t, ok)
}

func TestBookObserve(t *testing.T) {
	book, now := filledBook(t)

	points, err := book.Observe(now, []uint32{0, 1, 2})
	assert.NoError(t, err)
	assert.Len(t, points, 3)

	assert.Equal(t, "30", points[0].CumulativeBase.String())
	assert.Equal(t, "300", points[0].CumulativeQuote.String())
	assert.Equal(t, "25", points[1].CumulativeBase.String())
	assert.Equal(t, "10", points[2].CumulativeBase.String())
	assert.Equal(t, uint32(2), points[2].SecondsAgo)
}

func TestBookSnapshotRestore(t *testing.T) {
	book, now := filledBook(t)

	restored := NewBook("ETH-USDT", book.Windows, book.Retention)
	restored.restore(book.snapshot())

	want, err := book.Observe(now, []uint32{0, 2})
	assert.NoError(t, err)
	got, err := restored.Observe(now, []uint32{0, 2})
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecorderHandleTrade(t *testing.T) {
	rec := NewRecorder(nil, ebus.New(), metrics.New()).
		AddBook(NewBook("ETH-USDT", Windows{"3s": time.Second * 3}, 0))

	assert.NoError(t, rec.Restore(entity.State{}))

	ctx := context.Background()

	err := rec.HandleTrade(ctx, event.TradeReceived{
		Trade:  entity.Trade{Pair: "DOGE-USDT"},
		Offset: 1,
	})
	assert.ErrorContains(t, err, "not found")

	err = rec.HandleTrade(ctx, event.TradeReceived{
		Trade: entity.Trade{
			Pair:       "ETH-USDT",
			BaseVolume: decimal.NewFromInt(1),
		},
		Offset: 1,
	})
	assert.NoError(t, err)
}
