package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/hydra-monitor-service/internal/config"
	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces normalized projects to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes projects in a single WriteMessages call.
// Messages are keyed by project ID so every version of a project lands on the
// same partition.
func (w *Writer) LoadBatch(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(projects))
	for i := range projects {
		msg, err := serializeToMessage(projects[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage encodes a Project into a Kafka message.
func serializeToMessage(p domain.Project) (kafkago.Message, error) {
	out, err := domain.SerializeProject(p)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
		Headers: []kafkago.Header{
			{Key: "risk", Value: []byte(out.Headers["risk"])},
			{Key: "processed_at", Value: []byte(out.Headers["processed_at"])},
		},
	}, nil
}
