package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAgos(t *testing.T) {
	agos, err := parseAgos("0, 5,30")
	assert.NoError(t, err)
	assert.Equal(t, []uint32{0, 5, 30}, agos)

	_, err = parseAgos("")
	assert.Error(t, err)

	_, err = parseAgos("5,-1")
	assert.Error(t, err)
}
