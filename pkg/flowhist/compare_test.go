package flowhist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLTE(t *testing.T) {
	assert.True(t, lte(100, 5, 7))
	assert.True(t, lte(100, 7, 7))
	assert.False(t, lte(100, 7, 5))
}

func TestLTEAcrossWrap(t *testing.T) {
	// a sits just before the 2^32 boundary, b just after it
	assert.True(t, lte(10, 4294967290, 5))
	assert.False(t, lte(10, 5, 4294967290))
	assert.True(t, lte(10, 4294967290, 4294967295))
	assert.True(t, lte(10, 3, 5))
}
