package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Trade struct {
	ID          uuid.UUID
	Pair        string
	Maker       string
	Taker       string
	Price       decimal.Decimal
	BaseVolume  decimal.Decimal
	QuoteVolume decimal.Decimal
	Time        time.Time

	// Let’s assume for simplicity that we have one partition
	//Partition int64
}
