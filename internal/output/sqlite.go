/*
PURPOSE:
  Exports a run and its per-configuration metrics into a SQLite database.

REQUIREMENTS:
  User-specified:
  - Opt-in with --sqlite.

  Implementation-discovered:
  - Table columns are the field names of the row structs.
  - One "runs" row plus one "metrics" row per configuration.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through output.Batch.StageFile)
  - Dependencies: github.com/mattn/go-sqlite3, github.com/fatih/structs

ERROR HANDLING:
  - Everything runs in one transaction; any error rolls it back.

IMPLEMENTATION RULES:
  - Write to the path given; the batch decides the final name.

USAGE:
  err := output.WriteSQLite(tmpPath, info, results)

SELF-HEALING INSTRUCTIONS:
  - "table already exists" means the target path was not a fresh file.

RELATED FILES:
  - internal/output/batch.go

MAINTENANCE:
  - Adding a field to metricsRow adds a column.
*/

package output

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// Table names of the SQLite export.
const (
	SQLiteRunsTable    = "runs"
	SQLiteMetricsTable = "metrics"
)

type runRow struct {
	RunID          string
	Generated      string
	Source         string
	Configurations int
}

type metricsRow struct {
	RunID           string
	Configuration   string
	PacketsSent     float64
	PacketsReceived float64
	TotalBytes      float64
	ThroughputBps   float64
	ThroughputMbps  float64
	ThroughputGbps  float64
	PacketLossRate  float64
	SimTime         string
	Network         string
	UtilizationPct  float64
	Rating          string
}

// WriteSQLite creates a SQLite database at path holding the run and its metrics.
func WriteSQLite(path string, info ReportInfo, results map[string]model.MetricsRecord) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	run := runRow{
		RunID:          info.RunID,
		Generated:      info.Generated.Format(time.RFC3339),
		Source:         info.Source,
		Configurations: len(results),
	}
	if err := createTable(tx, SQLiteRunsTable, run); err != nil {
		return err
	}
	if err := insertRows(tx, SQLiteRunsTable, []any{run}); err != nil {
		return err
	}

	rows := make([]any, 0, len(results))
	for _, name := range model.Names(results) {
		m := results[name]
		rows = append(rows, metricsRow{
			RunID:           info.RunID,
			Configuration:   name,
			PacketsSent:     m.PacketsSent,
			PacketsReceived: m.PacketsReceived,
			TotalBytes:      m.TotalBytes,
			ThroughputBps:   m.ThroughputBps,
			ThroughputMbps:  m.ThroughputMbps,
			ThroughputGbps:  m.ThroughputGbps,
			PacketLossRate:  m.PacketLossRate,
			SimTime:         m.SimTime,
			Network:         m.Network,
			UtilizationPct:  m.UtilizationPct,
			Rating:          m.Rating.Tier(),
		})
	}
	if err := createTable(tx, SQLiteMetricsTable, metricsRow{}); err != nil {
		return err
	}
	if err := insertRows(tx, SQLiteMetricsTable, rows); err != nil {
		return err
	}

	return tx.Commit()
}

func createTable(tx *sql.Tx, name string, sample any) error {
	fields := strings.Join(structs.Names(sample), ", \n\t")
	stmt := `CREATE TABLE ` + name + ` (` + "\n\t" + fields + "\n" + `);`
	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return nil
}

func insertRows(tx *sql.Tx, name string, rows []any) error {
	if len(rows) == 0 {
		return nil
	}

	n := len(structs.Names(rows[0]))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	stmt, err := tx.Prepare(`INSERT INTO ` + name + ` VALUES (` + placeholders + `)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(structs.Values(row)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", name, err)
		}
	}
	return nil
}
