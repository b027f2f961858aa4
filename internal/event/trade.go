package event

import "github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"

type TradeReceived struct {
	entity.Trade

	Offset int64
	// Let’s assume for simplicity that we have one partition
	//Partition int64
}

type TradeSkipped struct {
	Offset int64
}
