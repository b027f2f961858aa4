package entity

import "github.com/shopspring/decimal"

// WindowVolume is the traded volume of one rolling window, both sides.
type WindowVolume struct {
	Base  decimal.Decimal
	Quote decimal.Decimal
}

// CumulativePoint is one answered lookback: the volume integrals as they
// stood secondsAgo before the query time.
type CumulativePoint struct {
	SecondsAgo      uint32
	CumulativeBase  decimal.Decimal
	CumulativeQuote decimal.Decimal
}
