package domain

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// SerializeProject encodes a normalized project for the sink topic, keyed by
// project ID with the risk and processing time as headers.
func SerializeProject(p Project) (OutputEvent, error) {
	data, err := sonic.Marshal(p)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize project: %w", err)
	}
	return OutputEvent{
		Key:   []byte(p.ID),
		Value: data,
		Headers: map[string]string{
			"risk":         string(p.Risk),
			"processed_at": p.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
