package event

import "github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"

type StateSaved struct {
	Offset int64
}

type StateRestored struct {
	Offset int64
}

type StatsUpdated struct {
	Pairs map[string]map[string]entity.WindowVolume
}
