package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
)

// loadRecords reads a JSON array of raw project records. "-" reads stdin.
func loadRecords(path string, stdin io.Reader) ([]domain.RawRecord, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var recs []domain.RawRecord
	if err := sonic.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return recs, nil
}

// normalizeAll runs each record through the same normalization as the
// pipeline transformer, without geocoding.
func normalizeAll(recs []domain.RawRecord) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(recs))
	for i, rec := range recs {
		value, err := sonic.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		p, err := domain.ParseRawEvent(domain.RawEvent{Value: value})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, domain.EnrichProject(p))
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
