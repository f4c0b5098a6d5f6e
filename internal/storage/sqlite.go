// Package storage provides SQLite-based persistence for solver runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run represents a single recorded solver run.
type Run struct {
	ID         int64
	DealID     string   // Deal file id, or empty for generated deals
	Seed       *int64   // Shuffle seed, nil for deals loaded from files
	FreeCells  int
	Solved     bool
	Iterations int
	Backtracks int
	Deal       string   // Starting board as deal YAML
	Moves      []string // Winning moves, one rendered move per entry
	CreatedAt  time.Time
}

// MoveCount returns the number of moves in the recorded solution.
func (r Run) MoveCount() int {
	return len(r.Moves)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deal_id TEXT NOT NULL DEFAULT '',
			seed INTEGER,
			free_cells INTEGER NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0,
			iterations INTEGER NOT NULL DEFAULT 0,
			backtracks INTEGER NOT NULL DEFAULT 0,
			move_count INTEGER NOT NULL DEFAULT 0,
			deal TEXT NOT NULL,
			moves TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_free_cells ON runs(free_cells);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	var seed sql.NullInt64
	if run.Seed != nil {
		seed = sql.NullInt64{Int64: *run.Seed, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (deal_id, seed, free_cells, solved, iterations, backtracks, move_count, deal, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.DealID,
		seed,
		run.FreeCells,
		run.Solved,
		run.Iterations,
		run.Backtracks,
		run.MoveCount(),
		run.Deal,
		strings.Join(run.Moves, "\n"),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, deal_id, seed, free_cells, solved, iterations, backtracks, deal, moves, created_at`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var seed sql.NullInt64
	var moves string
	var createdAt any

	if err := row.Scan(
		&r.ID,
		&r.DealID,
		&seed,
		&r.FreeCells,
		&r.Solved,
		&r.Iterations,
		&r.Backtracks,
		&r.Deal,
		&moves,
		&createdAt,
	); err != nil {
		return Run{}, err
	}

	if seed.Valid {
		v := seed.Int64
		r.Seed = &v
	}
	if moves != "" {
		r.Moves = strings.Split(moves, "\n")
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RunByID retrieves a run by its ID. Returns nil if no such run exists.
func (s *Store) RunByID(id int64) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for runs with a given number of
// free cells.
type RunStats struct {
	FreeCells     int
	Runs          int
	Solved        int
	AvgIterations float64
	ShortestWin   int // Fewest moves among solved runs, 0 if none
	LastRun       time.Time
}

// SolveRate returns the fraction of runs that were solved.
func (st RunStats) SolveRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Solved) / float64(st.Runs)
}

// StatsByFreeCells retrieves statistics grouped by free-cell count.
func (s *Store) StatsByFreeCells() (map[int]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT free_cells, COUNT(*), COALESCE(SUM(solved), 0), COALESCE(AVG(iterations), 0),
		        COALESCE(MIN(CASE WHEN solved = 1 THEN move_count END), 0), MAX(created_at)
		 FROM runs
		 GROUP BY free_cells`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastRun any
		if err := rows.Scan(&st.FreeCells, &st.Runs, &st.Solved, &st.AvgIterations, &st.ShortestWin, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.FreeCells] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
