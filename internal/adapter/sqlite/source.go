// Package sqlite reads project rows out of the legacy SQLite database so they
// can be replayed onto the source topic.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// scoreColumns are the spellings the score column has had across schema
// revisions, in lookup order.
var scoreColumns = []string{"suspicion_score", "score", "risk_score"}

const (
	severityColumn  = "max_severity"
	projectIDColumn = "project_id"
)

// Source reads the projects table of a legacy database.
type Source struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the database at path read-only and verifies it has a projects
// table.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Source, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'projects'").Scan(&name)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: no projects table: %w", path, err)
	}

	return &Source{db: db, logger: logger}, nil
}

// Records returns every row of the projects table as a raw record, keyed by
// column name. Each record also carries the risk, color and description the
// backend would have assigned it.
func (s *Source) Records(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM projects")
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	scoreCol := findColumn(cols, scoreColumns)
	if scoreCol == "" {
		s.logger.Warn("projects table has no score column", "columns", cols)
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var out []domain.RawRecord
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		rec := make(domain.RawRecord, len(cols))
		for i, c := range cols {
			rec[c] = columnValue(values[i])
		}
		promoteProjectID(rec)
		triage(rec, scoreCol)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	s.logger.Info("read legacy projects", "count", len(out), "score_column", scoreCol)
	return out, nil
}

// Close releases the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// triage labels rec from its severity and score columns.
func triage(rec domain.RawRecord, scoreCol string) {
	var score float64
	if scoreCol != "" {
		score = domain.ParseScore(rec[scoreCol])
	}
	severity, _ := rec[severityColumn].(string)

	risk := domain.Triage(severity, score)
	rec["risk"] = string(risk)
	rec["color"] = string(risk.Color())
	rec["risk_description"] = risk.Description()
	if scoreCol != "" && scoreCol != "score" {
		rec["score"] = score
	}
}

// promoteProjectID replaces the autoincrement row id with the public project
// id, keeping the row id under row_id.
func promoteProjectID(rec domain.RawRecord) {
	pid, ok := rec[projectIDColumn].(string)
	if !ok || pid == "" {
		return
	}
	if rowID, ok := rec["id"]; ok {
		rec["row_id"] = rowID
	}
	rec["id"] = pid
}

func findColumn(cols, candidates []string) string {
	for _, want := range candidates {
		if i := slices.IndexFunc(cols, func(c string) bool { return strings.EqualFold(c, want) }); i >= 0 {
			return cols[i]
		}
	}
	return ""
}

// columnValue turns driver values into JSON-friendly ones.
func columnValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case int64:
		return float64(t)
	default:
		return t
	}
}
