package flowhist

import (
	"errors"
	"math/big"
)

// MaxCardinality caps the observation ring at the uint16 range.
const MaxCardinality = 65535

var (
	ErrZeroCardinality = errors.New("cardinality cannot be zero")
	ErrTargetTooOld    = errors.New("target predates the oldest observation")
)

// Buffer holds the observation slots of one pair. The index, cardinality and
// cardinalityNext counters belong to the owning entity and are passed into
// every operation; the buffer keeps no other state between calls.
//
// Exactly one writer may call Initialize, Write or Grow, one call at a time.
// Reads never mutate slots: writes replace a slot value wholesale with
// freshly allocated integers, so a reader holding an Observation copy never
// sees a torn update.
type Buffer struct {
	slots []Observation
}

func New() *Buffer {
	return &Buffer{}
}

// Initialize seeds slot 0 with zero integrals at time. Must run exactly once
// before any Write or Grow.
func (b *Buffer) Initialize(time uint32) (cardinality, cardinalityNext uint16) {
	b.slots = append(b.slots[:0], seed(time))
	return 1, 1
}

// Write commits one sample. A write at the head's exact timestamp merges into
// the head slot and consumes no capacity. Otherwise the ring advances by one
// slot, stretching to cardinalityNext exactly when the write lands on slot
// cardinality-1 and a larger target was requested — any other write leaves
// cardinality alone.
func (b *Buffer) Write(index uint16, timestamp uint32, flowBase, flowQuote *big.Int, cardinality, cardinalityNext uint16) (indexUpdated, cardinalityUpdated uint16) {
	last := b.slots[index]

	if last.Timestamp == timestamp {
		b.slots[index] = commit(last, timestamp, flowBase, flowQuote)
		return index, cardinality
	}

	cardinalityUpdated = cardinality
	if cardinalityNext > cardinality && index == cardinality-1 {
		cardinalityUpdated = cardinalityNext
	}

	indexUpdated = (index + 1) % cardinalityUpdated
	b.slots[indexUpdated] = commit(last, timestamp, flowBase, flowQuote)
	return indexUpdated, cardinalityUpdated
}

// Grow raises the ring's target length to proposed slots. New slots are
// pre-touched with a placeholder timestamp so the first real write to each
// pays no cold-allocation cost; they stay uninitialized and invisible to
// queries until cardinality actually reaches them.
func (b *Buffer) Grow(current, proposed uint16) (uint16, error) {
	if current == 0 {
		return 0, ErrZeroCardinality
	}
	if proposed <= current {
		return current, nil
	}

	for i := current; i < proposed; i++ {
		b.slots = append(b.slots, Observation{Timestamp: 1})
	}

	return proposed, nil
}

// At returns a copy of slot i. Snapshot/restore helper for the owning entity.
func (b *Buffer) At(i uint16) Observation {
	return b.slots[i]
}

// Len reports how many slots have been touched so far.
func (b *Buffer) Len() int {
	return len(b.slots)
}

// Restore replaces the whole slot array. The owning entity rebuilds the
// buffer from its persisted snapshot with this before any other call.
func (b *Buffer) Restore(slots []Observation) {
	b.slots = slots
}
