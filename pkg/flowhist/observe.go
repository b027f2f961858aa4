package flowhist

import "math/big"

// ObserveSingle reports both cumulative volume integrals as of secondsAgo
// before now. Zero lookback reads the live head, extrapolated to now with the
// head's current flow when needed. A target between two stored samples is
// linearly interpolated; the division truncates toward zero, an accepted
// approximation since the true flow need not be constant across the span.
func (b *Buffer) ObserveSingle(now, secondsAgo uint32, index, cardinality uint16) (cumulativeBase, cumulativeQuote *big.Int, err error) {
	if secondsAgo == 0 {
		last := b.slots[index]
		if last.Timestamp != now {
			last = project(last, now)
		}
		return new(big.Int).Set(last.CumulativeBase), new(big.Int).Set(last.CumulativeQuote), nil
	}

	target := now - secondsAgo

	beforeOrAt, atOrAfter, err := b.surrounding(now, target, index, cardinality)
	if err != nil {
		return nil, nil, err
	}

	switch target {
	case beforeOrAt.Timestamp:
		return new(big.Int).Set(beforeOrAt.CumulativeBase), new(big.Int).Set(beforeOrAt.CumulativeQuote), nil
	case atOrAfter.Timestamp:
		return new(big.Int).Set(atOrAfter.CumulativeBase), new(big.Int).Set(atOrAfter.CumulativeQuote), nil
	}

	span := new(big.Int).SetUint64(uint64(atOrAfter.Timestamp - beforeOrAt.Timestamp))
	offset := new(big.Int).SetUint64(uint64(target - beforeOrAt.Timestamp))

	cumulativeBase = interpolate(beforeOrAt.CumulativeBase, atOrAfter.CumulativeBase, span, offset)
	cumulativeQuote = interpolate(beforeOrAt.CumulativeQuote, atOrAfter.CumulativeQuote, span, offset)
	return cumulativeBase, cumulativeQuote, nil
}

func interpolate(before, after, span, offset *big.Int) *big.Int {
	slope := new(big.Int).Sub(after, before)
	slope.Quo(slope, span)
	slope.Mul(slope, offset)
	return slope.Add(slope, before)
}

// Observe answers one lookback per element of secondsAgos, in order. Elements
// are independent; the first failing lookback aborts the whole call.
func (b *Buffer) Observe(now uint32, secondsAgos []uint32, index, cardinality uint16) (cumulativeBases, cumulativeQuotes []*big.Int, err error) {
	if cardinality == 0 {
		return nil, nil, ErrZeroCardinality
	}

	cumulativeBases = make([]*big.Int, len(secondsAgos))
	cumulativeQuotes = make([]*big.Int, len(secondsAgos))

	for i, ago := range secondsAgos {
		cumulativeBases[i], cumulativeQuotes[i], err = b.ObserveSingle(now, ago, index, cardinality)
		if err != nil {
			return nil, nil, err
		}
	}

	return cumulativeBases, cumulativeQuotes, nil
}
