package output

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite3")
	info := ReportInfo{
		Generated: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		RunID:     "run-1",
		Source:    "results",
	}

	require.NoError(t, WriteSQLite(path, info, sampleResults()))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var runID, generated string
	var configurations int
	require.NoError(t, db.QueryRow(
		`SELECT RunID, Generated, Configurations FROM `+SQLiteRunsTable,
	).Scan(&runID, &generated, &configurations))
	assert.Equal(t, "run-1", runID)
	assert.Equal(t, "2025-03-04T05:06:07Z", generated)
	assert.Equal(t, 2, configurations)

	rows, err := db.Query(`SELECT Configuration, PacketsSent, PacketLossRate, Rating FROM ` +
		SQLiteMetricsTable + ` ORDER BY Configuration`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		name   string
		sent   float64
		loss   float64
		rating string
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.name, &r.sent, &r.loss, &r.rating))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []row{
		{"Baseline", 1000, 5, "BASELINE"},
		{"HighLoad", 5000, 20, "BASELINE"},
	}, got)
}

func TestWriteSQLiteExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite3")
	info := ReportInfo{Generated: time.Now(), RunID: "run-1"}

	require.NoError(t, WriteSQLite(path, info, sampleResults()))
	assert.Error(t, WriteSQLite(path, info, sampleResults()))
}
