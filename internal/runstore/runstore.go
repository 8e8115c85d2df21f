// Package runstore persists analysis runs and their threshold sweeps across
// SQLite, MySQL and PostgreSQL backends.
package runstore

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// Table names used by the store.
const (
	runsTable    = "snpfiltr_runs"
	summaryTable = "snpfiltr_run_summary"
)

// StoreImpl handles durable run storage using various database backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new RunStore based on the backend type.
// For the SQLite backend an empty connStr falls back to the per-user file
// under the home directory.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunsDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite run store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL run store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL run store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled persistence
		return &StoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported run-store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create run-store tables: %w", err)
		}
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// createTableQueries returns the CREATE TABLE statements for the backend.
// Run IDs are generated in Go, so the column carries no auto-increment and
// the DDL stays portable.
func createTableQueries(backend schema.DatabaseBackend) []string {
	var cutoffType, pctType string
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		cutoffType = "DOUBLE PRECISION"
		pctType = "DOUBLE PRECISION"
	default: // SQLite
		cutoffType = "REAL"
		pctType = "REAL"
	}

	runs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id BIGINT PRIMARY KEY,
			run_time BIGINT NOT NULL,
			mode VARCHAR(16) NOT NULL,
			vcf_path VARCHAR(1024) NOT NULL,
			num_sites INTEGER NOT NULL,
			num_samples INTEGER NOT NULL,
			cutoff %s,
			sites_kept INTEGER,
			removed_pct %s,
			degenerate INTEGER NOT NULL
		);
	`, runsTable, cutoffType, pctType)

	summary := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id BIGINT NOT NULL,
			threshold %s NOT NULL,
			snps_retained INTEGER NOT NULL,
			missingness_fraction %s NOT NULL,
			PRIMARY KEY (run_id, threshold)
		);
	`, summaryTable, cutoffType, pctType)

	return []string{runs, summary}
}

// placeholder returns the parameter placeholder for position n (1-based).
func (s *StoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns a comma-joined placeholder list for n parameters.
func (s *StoreImpl) placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += s.placeholder(i)
	}
	return out
}

// RecordRun stores one invocation and its summary rows.
func (s *StoreImpl) RecordRun(rec schema.RunRecord, summary []schema.SummaryRow) error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	degenerate := 0
	if rec.Degenerate {
		degenerate = 1
	}
	insertRun := fmt.Sprintf(`INSERT INTO %s
		(run_id, run_time, mode, vcf_path, num_sites, num_samples, cutoff, sites_kept, removed_pct, degenerate)
		VALUES (%s)`, runsTable, s.placeholders(10))
	if _, err := tx.Exec(insertRun,
		rec.RunID, rec.RunTime.Unix(), string(rec.Mode), rec.VCFPath,
		rec.NumSites, rec.NumSamples, rec.Cutoff, rec.SitesKept, rec.RemovedPct, degenerate); err != nil {
		return fmt.Errorf("insert run %d: %w", rec.RunID, err)
	}

	insertRow := fmt.Sprintf(`INSERT INTO %s
		(run_id, threshold, snps_retained, missingness_fraction)
		VALUES (%s)`, summaryTable, s.placeholders(4))
	for _, row := range summary {
		if _, err := tx.Exec(insertRow, rec.RunID, row.Threshold, row.SNPsRetained, row.MissingFrac); err != nil {
			return fmt.Errorf("insert summary row for run %d: %w", rec.RunID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *StoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_time, mode, vcf_path, num_sites, num_samples,
		cutoff, sites_kept, removed_pct, degenerate
		FROM %s ORDER BY run_time DESC, run_id DESC LIMIT %s`, runsTable, s.placeholder(1))
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		var runTime int64
		var mode string
		var cutoff sql.NullFloat64
		var kept sql.NullInt64
		var pct sql.NullFloat64
		var degenerate int
		if err := rows.Scan(&rec.RunID, &runTime, &mode, &rec.VCFPath,
			&rec.NumSites, &rec.NumSamples, &cutoff, &kept, &pct, &degenerate); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.RunTime = time.Unix(runTime, 0).UTC()
		rec.Mode = schema.AnalysisMode(mode)
		rec.Degenerate = degenerate != 0
		if cutoff.Valid {
			v := cutoff.Float64
			rec.Cutoff = &v
		}
		if kept.Valid {
			v := int(kept.Int64)
			rec.SitesKept = &v
		}
		if pct.Valid {
			v := pct.Float64
			rec.RemovedPct = &v
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetSummary returns the sweep recorded for a run, in grid order.
func (s *StoreImpl) GetSummary(runID int64) ([]schema.SummaryRow, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT threshold, snps_retained, missingness_fraction
		FROM %s WHERE run_id = %s ORDER BY threshold ASC`, summaryTable, s.placeholder(1))
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("get summary for run %d: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.SummaryRow
	for rows.Next() {
		var row schema.SummaryRow
		if err := rows.Scan(&row.Threshold, &row.SNPsRetained, &row.MissingFrac); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var lastRunID atomic.Int64

// NewRunID generates a store-wide unique run identifier. IDs are generated
// in Go rather than by the database so the insert path is identical across
// backends. Within a process IDs are strictly increasing even when the
// clock granularity is coarse.
func NewRunID() int64 {
	for {
		id := time.Now().UnixNano()
		last := lastRunID.Load()
		if id <= last {
			id = last + 1
		}
		if lastRunID.CompareAndSwap(last, id) {
			return id
		}
	}
}
