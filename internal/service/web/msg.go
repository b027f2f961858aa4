package web

import (
	"reflect"

	"github.com/shopspring/decimal"
)

type msg struct {
	mType int
	data  []byte
	err   error
}

type BaseMessage struct {
	Name    string
	Payload interface{}
}

func NewMessage(payload interface{}) BaseMessage {
	return BaseMessage{
		Name:    reflect.TypeOf(payload).Name(),
		Payload: payload,
	}
}

type PairStats struct {
	Pair   string
	Frames []Frame
}

type Frame struct {
	Window      string
	BaseVolume  decimal.Decimal
	QuoteVolume decimal.Decimal
}
