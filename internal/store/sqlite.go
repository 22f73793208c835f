package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/taskplan/internal/logging"
	"github.com/me/taskplan/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every pooled connection to ":memory:" would see its own empty database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logging.Component(logger, "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Runs ---

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// CreateRun inserts run. An empty ID is replaced by a fresh "run_" id and a
// zero CreatedAt by the current time; both are written back to run.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.DatasetRun) error {
	if run.ID == "" {
		run.ID = "run_" + uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	s.logger.Debug("sql", "op", "insert", "table", "dataset_runs", "id", run.ID)

	quanta := run.Quanta
	if quanta == nil {
		quanta = []int{}
	}
	quantaJSON, err := json.Marshal(quanta)
	if err != nil {
		return fmt.Errorf("marshal quanta: %w", err)
	}

	// Seeds are full uint64; SQLite integers are signed 64-bit, so the bits
	// are stored as-is and reinterpreted on read.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO dataset_runs (id, kind, seed, batches, quanta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), int64(run.Seed), run.Batches, string(quantaJSON),
		run.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// GetRun returns the run with id, or nil if there is none.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.DatasetRun, error) {
	s.logger.Debug("sql", "op", "select", "table", "dataset_runs", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, seed, batches, quanta, created_at FROM dataset_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs newest first, with the total count.
func (s *SQLiteStore) ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.DatasetRun, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "dataset_runs", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dataset_runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, seed, batches, quanta, created_at FROM dataset_runs
		 ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.DatasetRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*model.DatasetRun, error) {
	var run model.DatasetRun
	var kind, quantaJSON, createdAt string
	var seed int64
	if err := sc.Scan(&run.ID, &kind, &seed, &run.Batches, &quantaJSON, &createdAt); err != nil {
		return nil, err
	}
	run.Kind = model.DatasetKind(kind)
	run.Seed = uint64(seed)
	if err := json.Unmarshal([]byte(quantaJSON), &run.Quanta); err != nil {
		return nil, fmt.Errorf("unmarshal quanta: %w", err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	return &run, nil
}

// --- Samples ---

// InsertSamples writes samples for runID in a single transaction; either all
// rows land or none do.
func (s *SQLiteStore) InsertSamples(ctx context.Context, runID string, samples []model.Sample) error {
	s.logger.Debug("sql", "op", "insert", "table", "dataset_samples", "run_id", runID, "count", len(samples))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_samples (run_id, batch, features, label, score) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		featuresJSON, err := json.Marshal(smp.Features)
		if err != nil {
			return fmt.Errorf("marshal features for batch %d: %w", smp.Batch, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, smp.Batch, string(featuresJSON), smp.Label, smp.Score); err != nil {
			return fmt.Errorf("insert batch %d: %w", smp.Batch, err)
		}
	}
	return tx.Commit()
}

// ListSamples returns the samples of runID in batch order, with the total count.
func (s *SQLiteStore) ListSamples(ctx context.Context, runID string, opts model.ListOptions) ([]model.Sample, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "dataset_samples", "run_id", runID, "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dataset_samples WHERE run_id = ?`, runID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT batch, features, label, score FROM dataset_samples
		 WHERE run_id = ? ORDER BY batch LIMIT ? OFFSET ?`, runID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	samples := []model.Sample{}
	for rows.Next() {
		var smp model.Sample
		var featuresJSON string
		if err := rows.Scan(&smp.Batch, &featuresJSON, &smp.Label, &smp.Score); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(featuresJSON), &smp.Features); err != nil {
			return nil, 0, fmt.Errorf("unmarshal features for batch %d: %w", smp.Batch, err)
		}
		samples = append(samples, smp)
	}
	return samples, total, rows.Err()
}

// LabelCounts returns how many samples of runID carry each label.
func (s *SQLiteStore) LabelCounts(ctx context.Context, runID string) (map[int]int, error) {
	s.logger.Debug("sql", "op", "count", "table", "dataset_samples", "run_id", runID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, COUNT(*) FROM dataset_samples WHERE run_id = ? GROUP BY label`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var label, n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	return counts, rows.Err()
}
