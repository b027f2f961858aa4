package main

import (
	"context"
	"log"
	"time"

	"github.com/IBM/sarama"

	"github.com/darkty0x/net-volume-uniswap-oracle/config"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/event"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/metrics"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/repository"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/consumer"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/faketrader"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/interrupter"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/recorder"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/watcher"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/service/web"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/app"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/ebus"
	"github.com/darkty0x/net-volume-uniswap-oracle/pkg/utils"
)

func main() {
	cfg := config.Build()
	eBus := ebus.New()
	meter := metrics.New()

	kafkaCl := utils.Must(sarama.NewClient(cfg.Kafka.Brokers, cfg.Kafka.SaramaConfig()))
	defer kafkaCl.Close()
	prod := utils.Must(sarama.NewSyncProducerFromClient(kafkaCl))
	defer prod.Close()

	stateRepo := repository.NewState(kafkaCl, prod, cfg.Kafka.SnapshotTopic)
	tradeRepo := repository.NewTrade(prod, cfg.Kafka.TradeTopic)

	rec := recorder.NewRecorder(stateRepo, eBus, meter)
	pairs := make([]string, 0, len(cfg.Pairs))
	for _, pair := range cfg.Pairs {
		rec.AddBook(recorder.NewBook(pair.Name, recorder.Windows(pair.Windows), pair.Retention))
		pairs = append(pairs, pair.Name)
	}

	fakeTrader := faketrader.NewTrader(tradeRepo, pairs...)
	cons := utils.Must(consumer.NewConsumer(kafkaCl, cfg.Kafka.TradeTopic, cfg.Kafka.TradeGroup, eBus))
	webServ := web.New(cfg.Web.Addr, rec, meter.Handler())
	watch := watcher.NewWatcher(eBus).
		EmitEvery(time.Second, func(ctx context.Context) (any, error) {
			return event.StatsUpdated{Pairs: rec.Stats()}, nil
		})

	eBus.
		Subscribe(event.StateSaved{}, watcher.LogAny).
		Subscribe(event.StateRestored{}, watcher.LogAny).
		Subscribe(event.TradeSkipped{}, watcher.LogAny).
		Subscribe(event.StateSaved{}, ebus.Typed(cons.Commit)).
		Subscribe(event.TradeReceived{}, ebus.Typed(rec.HandleTrade)).
		Subscribe(event.StatsUpdated{}, ebus.Typed(webServ.UpdateStats))

	err := app.NewApp().
		WithService(rec).
		WithService(fakeTrader).
		WithService(watch).
		WithService(cons).
		WithService(webServ).
		WithService(interrupter.Interrupter{}).
		Run(context.Background())

	log.Fatal(err)
}
