package flowhist

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFirstWrite(t *testing.T) {
	buf := New()

	card, next := buf.Initialize(100)
	assert.Equal(t, uint16(1), card)
	assert.Equal(t, uint16(1), next)

	idx, card := buf.Write(0, 150, big.NewInt(10), big.NewInt(-5), card, next)
	assert.Equal(t, uint16(0), idx)
	assert.Equal(t, uint16(1), card)

	slot := buf.At(0)
	assert.Equal(t, uint32(150), slot.Timestamp)
	assert.Equal(t, big.NewInt(10), slot.CumulativeBase)
	assert.Equal(t, big.NewInt(-5), slot.CumulativeQuote)
	assert.Equal(t, big.NewInt(10), slot.FlowBase)
	assert.Equal(t, big.NewInt(-5), slot.FlowQuote)

	base, quote, err := buf.ObserveSingle(150, 0, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(10), base)
	assert.Equal(t, big.NewInt(-5), quote)
}

func TestBufferSameSecondMerge(t *testing.T) {
	buf := New()
	card, next := buf.Initialize(100)

	idx, card := buf.Write(0, 150, big.NewInt(10), big.NewInt(20), card, next)
	idx, card = buf.Write(idx, 150, big.NewInt(3), big.NewInt(4), card, next)

	// no new slot consumed
	assert.Equal(t, uint16(0), idx)
	assert.Equal(t, uint16(1), card)

	slot := buf.At(0)
	assert.Equal(t, big.NewInt(13), slot.FlowBase)
	assert.Equal(t, big.NewInt(24), slot.FlowQuote)
	// merged writes span one nominal second: 10 + 10*1 + 3
	assert.Equal(t, big.NewInt(23), slot.CumulativeBase)
	assert.Equal(t, big.NewInt(44), slot.CumulativeQuote)
}

func TestBufferGrow(t *testing.T) {
	buf := New()

	_, err := buf.Grow(0, 5)
	assert.ErrorIs(t, err, ErrZeroCardinality)

	_, next := buf.Initialize(10)

	next, err = buf.Grow(next, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint16(4), next)
	assert.Equal(t, 4, buf.Len())

	// shrinking or repeating is a no-op
	next, err = buf.Grow(next, 3)
	assert.NoError(t, err)
	assert.Equal(t, uint16(4), next)

	// pre-touched slots carry the placeholder and stay invisible to queries
	assert.Equal(t, uint32(1), buf.At(2).Timestamp)
	assert.False(t, buf.At(2).Initialized)
}

func TestBufferGrowOnWrapOnly(t *testing.T) {
	buf := New()
	card, next := buf.Initialize(10)
	next, err := buf.Grow(next, 4)
	assert.NoError(t, err)

	one := big.NewInt(1)

	// landing on slot cardinality-1 with a pending target stretches the ring
	idx, card := buf.Write(0, 11, one, one, card, next)
	assert.Equal(t, uint16(1), idx)
	assert.Equal(t, uint16(4), card)

	next, err = buf.Grow(next, 6)
	assert.NoError(t, err)

	// mid-ring writes never stretch it
	idx, card = buf.Write(idx, 12, one, one, card, next)
	assert.Equal(t, uint16(2), idx)
	assert.Equal(t, uint16(4), card)

	idx, card = buf.Write(idx, 13, one, one, card, next)
	assert.Equal(t, uint16(3), idx)
	assert.Equal(t, uint16(4), card)

	idx, card = buf.Write(idx, 14, one, one, card, next)
	assert.Equal(t, uint16(4), idx)
	assert.Equal(t, uint16(6), card)
}
