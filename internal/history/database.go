package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"mtd/internal/config"
	"mtd/internal/domain"
)

// DatabaseRecorder records run history in MySQL. Recording is opt-in
// (--record) and failures here are warnings, never run failures.
type DatabaseRecorder struct {
	config *config.Config
}

// NewDatabaseRecorder creates a new DatabaseRecorder
func NewDatabaseRecorder(cfg *config.Config) *DatabaseRecorder {
	return &DatabaseRecorder{config: cfg}
}

// Record inserts the run summary and per-fixture statuses
func (dr *DatabaseRecorder) Record(meta domain.RunMeta, results []domain.DirectoryResult) error {
	db, err := dr.connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := dr.createTables(db); err != nil {
		return err
	}

	res, err := db.Exec(
		`INSERT INTO merced_runs
		   (run_at, directories, fixtures, passed, mismatched, exec_failed, duration_seconds, workers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Timestamp, meta.TotalDirectories, meta.TotalFixtures,
		meta.Passed, meta.Mismatched, meta.ExecFailed, meta.DurationSeconds, meta.Workers,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := db.Prepare(
		`INSERT INTO merced_fixture_results (run_id, directory, fixture, status, baseline_missing)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare fixture insert: %w", err)
	}
	defer stmt.Close()

	for _, dirResult := range results {
		dir := filepath.Base(dirResult.Dir)
		for _, r := range dirResult.Results {
			if _, err := stmt.Exec(runID, dir, "in."+r.Fixture.Suffix, r.Status.String(), r.BaselineMissing); err != nil {
				return fmt.Errorf("insert fixture result: %w", err)
			}
		}
	}

	return nil
}

// connect opens the history database using .env / environment settings
func (dr *DatabaseRecorder) connect() (*sql.DB, error) {
	// .env next to the suite; might not exist, environment variables then apply
	envPath := filepath.Join(dr.config.GetSuiteRoot(), ".env")
	if err := godotenv.Load(envPath); err != nil {
		_ = err
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")
	if dbName == "" {
		dbName = "merced_history"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPassword, dbHost, dbPort, dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database unreachable: %w", err)
	}
	return db, nil
}

func (dr *DatabaseRecorder) createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS merced_runs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_at VARCHAR(64) NOT NULL,
			directories INT NOT NULL,
			fixtures INT NOT NULL,
			passed INT NOT NULL,
			mismatched INT NOT NULL,
			exec_failed INT NOT NULL,
			duration_seconds DOUBLE NOT NULL,
			workers INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS merced_fixture_results (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id BIGINT NOT NULL,
			directory VARCHAR(255) NOT NULL,
			fixture VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL,
			baseline_missing BOOLEAN NOT NULL DEFAULT FALSE,
			INDEX idx_run (run_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create history tables: %w", err)
		}
	}
	return nil
}
