package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/couchcryptid/hydra-monitor-service/internal/config"
	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher writes raw project records to the source topic. It backs the
// legacy database import so imported rows go through the same pipeline as
// live ones.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a producer for the configured source topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSourceTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    100,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish encodes and writes records. keyField names the record field used as
// the message key; records without it are written unkeyed.
func (p *Publisher) Publish(ctx context.Context, records []domain.RawRecord, keyField string) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(records))
	for i, rec := range records {
		msg, err := recordToMessage(rec, keyField)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish raw records: %w", err)
	}
	p.logger.Info("raw records published", "count", len(msgs), "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func recordToMessage(rec domain.RawRecord, keyField string) (kafkago.Message, error) {
	data, err := sonic.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode raw record: %w", err)
	}
	msg := kafkago.Message{Value: data}
	if v, ok := rec[keyField]; ok && v != nil {
		msg.Key = []byte(fmt.Sprint(v))
	}
	return msg, nil
}
