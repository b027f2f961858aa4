package flowhist

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newObservedBuffer(t *testing.T) (*Buffer, uint16, uint16) {
	t.Helper()

	buf := New()
	card, next := buf.Initialize(100)
	next, err := buf.Grow(next, 10)
	assert.NoError(t, err)

	idx, card := buf.Write(0, 110, big.NewInt(50), big.NewInt(70), card, next)
	idx, card = buf.Write(idx, 120, big.NewInt(3), big.NewInt(-2), card, next)

	return buf, idx, card
}

func TestObserveHead(t *testing.T) {
	buf, idx, card := newObservedBuffer(t)

	// head: 50 + 50*10 + 3 and 70 + 70*10 - 2
	base, quote, err := buf.ObserveSingle(120, 0, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(553), base)
	assert.Equal(t, big.NewInt(768), quote)

	// now moved past the head, the head's flow extrapolates forward
	base, quote, err = buf.ObserveSingle(130, 0, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(583), base)
	assert.Equal(t, big.NewInt(748), quote)

	// target after the head but before now
	base, quote, err = buf.ObserveSingle(130, 5, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(568), base)
	assert.Equal(t, big.NewInt(758), quote)
}

func TestObserveStoredBoundaries(t *testing.T) {
	buf, idx, card := newObservedBuffer(t)

	// exact hits return stored integrals, no interpolation error
	base, quote, err := buf.ObserveSingle(120, 10, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(50), base)
	assert.Equal(t, big.NewInt(70), quote)

	base, quote, err = buf.ObserveSingle(120, 20, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), base)
	assert.Equal(t, big.NewInt(0), quote)
}

func TestObserveInterpolated(t *testing.T) {
	buf, idx, card := newObservedBuffer(t)

	// halfway between t=100 and t=110
	base, quote, err := buf.ObserveSingle(120, 15, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(25), base)
	assert.Equal(t, big.NewInt(35), quote)

	// between t=110 and t=120; the slope division truncates toward zero
	base, quote, err = buf.ObserveSingle(120, 5, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(300), base)
	assert.Equal(t, big.NewInt(415), quote)
}

func TestObserveTooOld(t *testing.T) {
	buf, idx, card := newObservedBuffer(t)

	_, _, err := buf.ObserveSingle(120, 25, idx, card)
	assert.ErrorIs(t, err, ErrTargetTooOld)
	assert.ErrorContains(t, err, "oldest 100")
}

func TestObserveMany(t *testing.T) {
	buf, idx, card := newObservedBuffer(t)

	_, _, err := buf.Observe(120, []uint32{0}, idx, 0)
	assert.ErrorIs(t, err, ErrZeroCardinality)

	bases, quotes, err := buf.Observe(120, []uint32{0, 10, 15}, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, []*big.Int{big.NewInt(553), big.NewInt(50), big.NewInt(25)}, bases)
	assert.Equal(t, []*big.Int{big.NewInt(768), big.NewInt(70), big.NewInt(35)}, quotes)

	_, _, err = buf.Observe(120, []uint32{0, 25}, idx, card)
	assert.ErrorIs(t, err, ErrTargetTooOld)
}

func TestObserveAcrossTimestampWrap(t *testing.T) {
	buf := New()
	card, next := buf.Initialize(4294967286)
	next, err := buf.Grow(next, 4)
	assert.NoError(t, err)

	idx, card := buf.Write(0, 4294967294, big.NewInt(100), big.NewInt(200), card, next)
	idx, card = buf.Write(idx, 6, big.NewInt(10), big.NewInt(20), card, next)

	slot := buf.At(2)
	// the wrapped delta is 8 seconds: 100 + 100*8 + 10
	assert.Equal(t, big.NewInt(910), slot.CumulativeBase)
	assert.Equal(t, big.NewInt(1820), slot.CumulativeQuote)

	// target t=2 falls inside the span crossing the boundary
	base, quote, err := buf.ObserveSingle(6, 4, idx, card)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(504), base)
	assert.Equal(t, big.NewInt(1008), quote)

	// lookback past the wrapped oldest sample
	_, _, err = buf.ObserveSingle(6, 30, idx, card)
	assert.ErrorIs(t, err, ErrTargetTooOld)
}
