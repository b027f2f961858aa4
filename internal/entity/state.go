package entity

import (
	"math/big"
	"time"
)

// State is the persisted snapshot of the whole recorder: one Pair entry per
// traded pair plus the highest trade offset folded into any of them.
type State struct {
	Pairs  map[string]Pair
	Offset int64
}

// Pair carries everything needed to rebuild one observation book: the slot
// array and the three counters that address it.
type Pair struct {
	Name            string
	Windows         map[string]time.Duration
	Index           uint16
	Cardinality     uint16
	CardinalityNext uint16
	Slots           []Slot
	Offset          int64
}

type Slot struct {
	Timestamp       uint32
	CumulativeBase  *big.Int
	CumulativeQuote *big.Int
	FlowBase        *big.Int
	FlowQuote       *big.Int
	Initialized     bool
}
