package flowhist

import "math/big"

// Observation is one stored sample: the running volume integrals of both
// sides of a pair at Timestamp, plus the flow rate attributed to the last
// completed period. Flows live in the signed 128-bit domain, cumulatives in
// the signed 256-bit domain; overflow there is outside normal operating
// ranges and is not checked.
type Observation struct {
	Timestamp       uint32
	CumulativeBase  *big.Int
	CumulativeQuote *big.Int
	FlowBase        *big.Int
	FlowQuote       *big.Int
	Initialized     bool
}

func seed(timestamp uint32) Observation {
	return Observation{
		Timestamp:       timestamp,
		CumulativeBase:  new(big.Int),
		CumulativeQuote: new(big.Int),
		FlowBase:        new(big.Int),
		FlowQuote:       new(big.Int),
		Initialized:     true,
	}
}

// advance moves last forward to timestamp, extending both integrals by
// flow*elapsed. The delta wraps in uint32 so a single pass over the 2^32
// boundary still yields the small positive elapsed time. Same-second steps
// count as one nominal second; without that the flow term would vanish and
// the integrals would lose the merged volume.
func advance(last Observation, timestamp uint32) Observation {
	delta := timestamp - last.Timestamp
	if delta == 0 {
		delta = 1
	}
	span := new(big.Int).SetUint64(uint64(delta))

	cumBase := new(big.Int).Mul(last.FlowBase, span)
	cumBase.Add(cumBase, last.CumulativeBase)
	cumQuote := new(big.Int).Mul(last.FlowQuote, span)
	cumQuote.Add(cumQuote, last.CumulativeQuote)

	return Observation{
		Timestamp:       timestamp,
		CumulativeBase:  cumBase,
		CumulativeQuote: cumQuote,
		Initialized:     true,
	}
}

// project is the read path: carry the head's known flow forward to timestamp
// without committing anything new.
func project(last Observation, timestamp uint32) Observation {
	next := advance(last, timestamp)
	next.FlowBase = new(big.Int).Set(last.FlowBase)
	next.FlowQuote = new(big.Int).Set(last.FlowQuote)
	return next
}

// commit is the write path: fold the new flows in. A write landing on the
// same timestamp merges into the slot, so flows add up; a later timestamp
// starts a fresh period and the flows reset to the supplied values.
func commit(last Observation, timestamp uint32, flowBase, flowQuote *big.Int) Observation {
	next := advance(last, timestamp)
	next.CumulativeBase.Add(next.CumulativeBase, flowBase)
	next.CumulativeQuote.Add(next.CumulativeQuote, flowQuote)

	if timestamp == last.Timestamp {
		next.FlowBase = new(big.Int).Add(last.FlowBase, flowBase)
		next.FlowQuote = new(big.Int).Add(last.FlowQuote, flowQuote)
	} else {
		next.FlowBase = new(big.Int).Set(flowBase)
		next.FlowQuote = new(big.Int).Set(flowQuote)
	}

	return next
}
