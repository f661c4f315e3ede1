package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// createDB writes a legacy database at a temp path using the given schema
// and inserts.
func createDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

const legacySchema = `CREATE TABLE projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id TEXT UNIQUE,
	project_description TEXT,
	region TEXT,
	municipality TEXT,
	contractor TEXT,
	contract_cost REAL,
	start_date TEXT,
	max_severity TEXT,
	suspicion_score REAL DEFAULT 0,
	color_triage TEXT,
	latitude REAL,
	longitude REAL
)`

func TestSource_Records(t *testing.T) {
	path := createDB(t, legacySchema,
		`INSERT INTO projects (project_id, project_description, region, municipality, contractor, contract_cost, start_date, max_severity, suspicion_score, latitude, longitude)
		 VALUES ('P-2201', 'Rehabilitation of Dike', 'Region VIII', 'Tacloban City', 'Tacloban Earthworks', 12750000, '2021-06-01', 'HIGH', 65, 11.2445, 125.0036)`,
		`INSERT INTO projects (project_id, project_description, max_severity, suspicion_score)
		 VALUES ('P-1042', 'Flood Control Structure', NULL, 85)`,
		`INSERT INTO projects (project_id, project_description, max_severity, suspicion_score)
		 VALUES ('P-3300', 'Drainage Improvement', 'VAGUENESS', 40)`,
		`INSERT INTO projects (project_id, project_description) VALUES ('P-4410', 'Seawall')`,
	)

	src, err := Open(context.Background(), path, discardLogger())
	require.NoError(t, err)
	defer src.Close()

	recs, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 4)

	byID := map[string]map[string]any{}
	for _, r := range recs {
		byID[r["project_id"].(string)] = r
	}

	tacloban := byID["P-2201"]
	assert.Equal(t, "P-2201", tacloban["id"])
	assert.Equal(t, 1.0, tacloban["row_id"])
	assert.Equal(t, "HIGH", tacloban["risk"])
	assert.Equal(t, "YELLOW", tacloban["color"])
	assert.Equal(t, 65.0, tacloban["score"])
	assert.Equal(t, "Rehabilitation of Dike", tacloban["project_description"])
	assert.InDelta(t, 11.2445, tacloban["latitude"], 1e-9)

	assert.Equal(t, "CRITICAL", byID["P-1042"]["risk"])
	assert.Equal(t, "RED", byID["P-1042"]["color"])
	assert.Equal(t, "INDETERMINATE", byID["P-3300"]["risk"])
	assert.Equal(t, "INDETERMINATE", byID["P-4410"]["risk"])
	assert.Equal(t, "No risk assessment available.", byID["P-4410"]["risk_description"])
	assert.Nil(t, byID["P-4410"]["municipality"])
}

func TestSource_AlternateScoreColumn(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE projects (project_id TEXT, risk_score REAL)`,
		`INSERT INTO projects VALUES ('a', 72), ('b', 15)`,
	)

	src, err := Open(context.Background(), path, discardLogger())
	require.NoError(t, err)
	defer src.Close()

	recs, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "HIGH", recs[0]["risk"])
	assert.Equal(t, 72.0, recs[0]["score"])
	assert.Equal(t, "LOW", recs[1]["risk"])
}

func TestSource_NoScoreColumn(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE projects (project_id TEXT, max_severity TEXT)`,
		`INSERT INTO projects VALUES ('a', 'CRITICAL'), ('b', NULL)`,
	)

	src, err := Open(context.Background(), path, discardLogger())
	require.NoError(t, err)
	defer src.Close()

	recs, err := src.Records(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CRITICAL", recs[0]["risk"])
	assert.Equal(t, "INDETERMINATE", recs[1]["risk"])
	assert.NotContains(t, recs[1], "score")
}

func TestOpen_MissingProjectsTable(t *testing.T) {
	path := createDB(t, `CREATE TABLE reports (id INTEGER)`)

	_, err := Open(context.Background(), path, discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no projects table")
}

func TestFindColumn(t *testing.T) {
	assert.Equal(t, "Suspicion_Score", findColumn([]string{"id", "Suspicion_Score", "score"}, scoreColumns))
	assert.Equal(t, "score", findColumn([]string{"id", "score", "risk_score"}, scoreColumns))
	assert.Empty(t, findColumn([]string{"id"}, scoreColumns))
}

func TestPromoteProjectID(t *testing.T) {
	rec := map[string]any{"id": 7.0, "project_id": "P-7"}
	promoteProjectID(rec)
	assert.Equal(t, map[string]any{"id": "P-7", "row_id": 7.0, "project_id": "P-7"}, rec)

	bare := map[string]any{"id": 7.0, "project_id": nil}
	promoteProjectID(bare)
	assert.Equal(t, 7.0, bare["id"])
	assert.NotContains(t, bare, "row_id")
}

func TestColumnValue(t *testing.T) {
	assert.Equal(t, "abc", columnValue([]byte("abc")))
	assert.Equal(t, 3.0, columnValue(int64(3)))
	assert.Nil(t, columnValue(nil))
}
