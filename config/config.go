package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Kafka Kafka
	Web   Web
	Pairs []Pair
}

// Build
// todo build somehow
func Build() *Config {
	return &Config{
		Kafka: Kafka{
			TradeTopic:    "trades",
			TradeGroup:    "netvolume",
			SnapshotTopic: "observations",
			Brokers:       []string{"127.0.0.1:9092"},
		},
		Web: Web{
			Addr: "127.0.0.1:4242",
		},
		Pairs: []Pair{
			{
				Name:      "ETH-USDT",
				Windows:   map[string]time.Duration{"10s": time.Second * 10, "1m": time.Minute},
				Retention: time.Minute * 10,
			},
			{
				Name:      "BTC-USDT",
				Windows:   map[string]time.Duration{"30s": time.Second * 30, "5m": time.Minute * 5},
				Retention: time.Minute * 30,
			},
		},
	}
}

type Kafka struct {
	TradeTopic    string
	TradeGroup    string
	SnapshotTopic string
	Brokers       []string
}

func (k Kafka) SaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true

	return cfg
}

type Web struct {
	Addr string
}

type Pair struct {
	Name      string
	Windows   map[string]time.Duration
	Retention time.Duration
}
