package producer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/fvelazquezb100/betadona/pkg/contracts/events"
)

// KafkaPublisher emite os eventos da liquidação em dois tópicos: um por
// aposta (bet_settled) e um resumo por jornada (matchday_settled).
type KafkaPublisher struct {
	BetWriter      *kafka.Writer
	MatchdayWriter *kafka.Writer
}

func NewKafkaPublisher(betWriter, matchdayWriter *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{BetWriter: betWriter, MatchdayWriter: matchdayWriter}
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.BetWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishMatchdaySettled(ctx context.Context, e events.MatchdaySettled) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.MatchdayWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.Date), Value: b})
}
