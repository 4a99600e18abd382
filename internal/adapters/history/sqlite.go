// internal/adapters/history/sqlite.go
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
)

// DefaultLimit is used when a filter asks for no explicit limit.
const DefaultLimit = 20

// timeLayout is fixed-width so that start_time sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists run outcomes in a single SQLite file.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the history database at path, creating the parent
// directory as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// one writer; runs are recorded sequentially
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: path}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		target TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		dry_run INTEGER NOT NULL DEFAULT 0,
		state TEXT NOT NULL,
		failed_stage TEXT,
		url_count INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		statistics TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
	CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start_time);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// statRow is the JSON shape of one statistics entry.
type statRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SaveRun inserts the run, replacing a previous row with the same ID.
func (s *Store) SaveRun(ctx context.Context, result *domain.RunResult) error {
	if result == nil {
		return fmt.Errorf("nil run result")
	}

	stats := []statRow{}
	if result.Summary != nil {
		for _, st := range result.Summary.Stages {
			stats = append(stats, statRow{Name: st.Name, Count: st.Count})
		}
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to serialize statistics: %w", err)
	}

	failedStage := ""
	if result.FailedStage.IsValid() {
		failedStage = result.FailedStage.String()
	}
	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}
	end := result.EndTime
	if end.IsZero() {
		end = result.StartTime
	}

	query := `
	INSERT OR REPLACE INTO runs
		(id, target, start_time, end_time, dry_run, state, failed_stage, url_count, error, statistics)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		result.ID,
		result.Target.Root,
		result.StartTime.UTC().Format(timeLayout),
		end.UTC().Format(timeLayout),
		boolToInt(result.DryRun),
		string(result.State),
		failedStage,
		result.URLCount,
		errText,
		string(statsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, filter ports.RunFilter) ([]ports.RunRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
	SELECT id, target, start_time, end_time, dry_run, state, failed_stage, url_count, error, statistics
	FROM runs
	`
	args := []any{}
	if filter.Target != "" {
		query += " WHERE target = ?"
		args = append(args, filter.Target)
	}
	query += " ORDER BY start_time DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	records := []ports.RunRecord{}
	for rows.Next() {
		var (
			rec                  ports.RunRecord
			start, end, state    string
			dryRun               int
			failedStage, errText sql.NullString
			statsJSON            sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Target, &start, &end, &dryRun, &state,
			&failedStage, &rec.URLCount, &errText, &statsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.StartTime, _ = time.Parse(timeLayout, start)
		rec.EndTime, _ = time.Parse(timeLayout, end)
		rec.DryRun = dryRun != 0
		rec.State = domain.RunState(state)
		rec.FailedStage = failedStage.String
		rec.Error = errText.String

		if statsJSON.Valid && statsJSON.String != "" {
			var stats []statRow
			if err := json.Unmarshal([]byte(statsJSON.String), &stats); err != nil {
				return nil, fmt.Errorf("failed to parse statistics for run %s: %w", rec.ID, err)
			}
			for _, st := range stats {
				rec.Statistics = append(rec.Statistics, domain.StageCount{Name: st.Name, Count: st.Count})
			}
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
