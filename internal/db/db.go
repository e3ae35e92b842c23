// Package db provides sqlite persistence for analysis runs and their
// per-event trijet selection results.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"
)

// DB wraps the sqlite connection used by the report service.
type DB struct {
	*sql.DB
	path string
}

// NewDB opens (creating if necessary) the sqlite database at path and
// ensures the schema is present. Use MigrateUp instead when running
// against a migrations directory in deployment.
func NewDB(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sdb, path: path}
	if err := db.EnsureSchema(); err != nil {
		sdb.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables if they do not exist. Kept in sync
// with the migrations under migrations/; convenient for tests and
// first-run setups without a migrations directory.
func (db *DB) EnsureSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id            TEXT PRIMARY KEY,
			dataset           TEXT NOT NULL,
			event_count       BIGINT NOT NULL,
			target_mass       DOUBLE NOT NULL,
			pt_mean           DOUBLE,
			pt_std            DOUBLE,
			disc_mean         DOUBLE,
			disc_std          DOUBLE,
			created_at        BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS trijet_results (
			run_id            TEXT NOT NULL,
			event_index       BIGINT NOT NULL,
			best_pt           DOUBLE NOT NULL,
			best_max_disc     DOUBLE NOT NULL,
			best_mass         DOUBLE NOT NULL,
			PRIMARY KEY (run_id, event_index),
			FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_trijet_results_run
			ON trijet_results(run_id, event_index);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// AttachAdminRoutes mounts the debug surface on mux: a tailSQL instance
// pointed at the results database and an on-demand backup download.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Trijet results DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupPath := fmt.Sprintf("backup-%d.db", time.Now().Unix())
		if _, err := db.Exec("VACUUM INTO ?", backupPath); err != nil {
			http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
			return
		}
		defer os.Remove(backupPath)

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", backupPath))
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, backupPath)
	}))
}
