package web

import (
	"sync"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
)

type state struct {
	pairs map[string]map[string]entity.WindowVolume // pair -> window -> volume
	mx    sync.RWMutex
}

func newState() *state {
	return &state{
		pairs: make(map[string]map[string]entity.WindowVolume),
	}
}

func (s *state) update(pairs map[string]map[string]entity.WindowVolume) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.pairs = pairs
}

func (s *state) get(pair string) map[string]entity.WindowVolume {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.pairs[pair]
}
