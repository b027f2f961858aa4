package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
)

type State struct {
	kafkaClient sarama.Client
	producer    sarama.SyncProducer
	topic       string
}

func NewState(kafkaClient sarama.Client, prod sarama.SyncProducer, topic string) *State {
	return &State{
		kafkaClient: kafkaClient,
		producer:    prod,
		topic:       topic,
	}
}

func (s *State) LastState(ctx context.Context) (entity.State, error) {
	// Let’s assume for simplicity that we have one partition
	state := entity.State{
		Pairs: make(map[string]entity.Pair),
	}

	next, err := s.kafkaClient.GetOffset(s.topic, 0, sarama.OffsetNewest)
	if err != nil {
		return state, fmt.Errorf("get offset: %w", err)
	}
	if next <= 0 {
		// empty topic
		return state, nil
	}

	cons, err := sarama.NewConsumerFromClient(s.kafkaClient)
	if err != nil {
		return state, fmt.Errorf("new consumer: %w", err)
	}
	defer cons.Close()

	cp, err := cons.ConsumePartition(s.topic, 0, sarama.OffsetOldest)
	if err != nil {
		return state, fmt.Errorf("consume partition: %w", err)
	}
	defer cp.Close()

	last := next - 1
	for {
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case msg := <-cp.Messages():
			pair := entity.Pair{}
			if err := json.Unmarshal(msg.Value, &pair); err != nil {
				return state, fmt.Errorf("unmarshal pair: %w", err)
			}
			state.Pairs[pair.Name] = pair
			if pair.Offset > state.Offset {
				state.Offset = pair.Offset
			}

			if msg.Offset == last {
				return state, nil
			}
		}
	}
}

func (s *State) Store(ctx context.Context, state entity.State) error {
	msgs := make([]*sarama.ProducerMessage, 0, len(state.Pairs))
	for name, pair := range state.Pairs {
		pair.Offset = state.Offset
		payload, err := json.Marshal(pair)
		if err != nil {
			return fmt.Errorf("marshal pair: %w", err)
		}

		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: s.topic,
			Key:   sarama.StringEncoder(name),
			Value: sarama.ByteEncoder(payload),
		})
	}

	return s.producer.SendMessages(msgs)
}
