package faketrader

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
)

type TradeStore interface {
	Store(ctx context.Context, trade entity.Trade) error
}

type Trader struct {
	pairs []string
	repo  TradeStore
}

func NewTrader(repo TradeStore, pairs ...string) *Trader {
	return &Trader{
		repo:  repo,
		pairs: pairs,
	}
}

func (t *Trader) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond * 100)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, pair := range t.pairs {
				base := decimal.NewFromInt(int64(rand.Intn(200)))
				price := decimal.NewFromInt(int64(1 + rand.Intn(50)))

				trade := entity.Trade{
					ID:          uuid.New(),
					Pair:        pair,
					Price:       price,
					BaseVolume:  base,
					QuoteVolume: base.Mul(price),
					Time:        time.Now(),
				}

				if err := t.repo.Store(ctx, trade); err != nil {
					return err
				}
			}
		}
	}
}
