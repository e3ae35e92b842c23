package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hepworks/trijet.report/internal/trijet"
)

// AnalysisRun is the persisted record of one batch analysis: the dataset
// it ran over, the reference mass, and headline statistics of the two
// output observables.
type AnalysisRun struct {
	RunID      string  `json:"run_id"`
	Dataset    string  `json:"dataset"`
	EventCount int     `json:"event_count"`
	TargetMass float64 `json:"target_mass"`
	PtMean     float64 `json:"pt_mean"`
	PtStd      float64 `json:"pt_std"`
	DiscMean   float64 `json:"disc_mean"`
	DiscStd    float64 `json:"disc_std"`
	CreatedAt  int64   `json:"created_at"`
}

// RunStore provides persistence for analysis runs and their per-event
// results.
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore backed by the given database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Ping reports whether the underlying database is reachable.
func (s *RunStore) Ping() error {
	return s.db.Ping()
}

// InsertRun persists a run record together with its per-event results,
// atomically. If RunID is empty a UUID is generated. Results are stored
// with their event index so listing restores input order exactly.
func (s *RunStore) InsertRun(run *AnalysisRun, results []trijet.Result) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	run.EventCount = len(results)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin run insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analysis_runs (
			run_id, dataset, event_count, target_mass,
			pt_mean, pt_std, disc_mean, disc_std, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Dataset, run.EventCount, run.TargetMass,
		run.PtMean, run.PtStd, run.DiscMean, run.DiscStd, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trijet_results (run_id, event_index, best_pt, best_max_disc, best_mass)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.Exec(run.RunID, i, r.Pt, r.MaxDisc, r.Mass); err != nil {
			return fmt.Errorf("insert result %d of run %s: %w", i, run.RunID, err)
		}
	}

	return tx.Commit()
}

// GetRun returns one run record by ID, or sql.ErrNoRows.
func (s *RunStore) GetRun(runID string) (*AnalysisRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, dataset, event_count, target_mass,
		       pt_mean, pt_std, disc_mean, disc_std, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)

	var run AnalysisRun
	err := row.Scan(
		&run.RunID, &run.Dataset, &run.EventCount, &run.TargetMass,
		&run.PtMean, &run.PtStd, &run.DiscMean, &run.DiscStd, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns() ([]*AnalysisRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, dataset, event_count, target_mass,
		       pt_mean, pt_std, disc_mean, disc_std, created_at
		FROM analysis_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(
			&run.RunID, &run.Dataset, &run.EventCount, &run.TargetMass,
			&run.PtMean, &run.PtStd, &run.DiscMean, &run.DiscStd, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// ListResults returns a run's per-event results ordered by event index,
// i.e. in the original input order of the batch.
func (s *RunStore) ListResults(runID string) ([]trijet.Result, error) {
	rows, err := s.db.Query(`
		SELECT best_pt, best_max_disc, best_mass
		FROM trijet_results WHERE run_id = ? ORDER BY event_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []trijet.Result
	for rows.Next() {
		var r trijet.Result
		if err := rows.Scan(&r.Pt, &r.MaxDisc, &r.Mass); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteRun removes a run and its results.
func (s *RunStore) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin run delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trijet_results WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete results of run %s: %w", runID, err)
	}
	res, err := tx.Exec(`DELETE FROM analysis_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
