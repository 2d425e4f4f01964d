// Package storage provides SQLite-based persistence for level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalPlayer is the player name used for games played in a local terminal.
const LocalPlayer = "local"

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Completion is one solved level.
type Completion struct {
	ID        int64
	LevelID   string
	Player    string
	Moves     int
	Pushes    int
	Solution  string // LURD notation
	CreatedAt time.Time
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

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			solution TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_id, moves, pushes);
		CREATE INDEX IF NOT EXISTS idx_completions_player ON completions(player, level_id);
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

// SaveCompletion records a solved level. An empty player is stored as
// LocalPlayer. Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.LevelID == "" {
		return 0, errors.New("storage: cannot save completion: empty level id")
	}
	if c.Player == "" {
		c.Player = LocalPlayer
	}

	result, err := s.db.Exec(
		"INSERT INTO completions (level_id, player, moves, pushes, solution) VALUES (?, ?, ?, ?, ?)",
		c.LevelID, c.Player, c.Moves, c.Pushes, c.Solution,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const completionColumns = `id, level_id, player, moves, pushes, solution, created_at`

// BestRuns retrieves the best N runs of a level across all players,
// fewest moves first, then fewest pushes, then earliest.
func (s *Store) BestRuns(levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY moves ASC, pushes ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Best returns a player's best run of a level, or nil if the player has
// not solved it.
func (s *Store) Best(player, levelID string) (*Completion, error) {
	row := s.db.QueryRow(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE player = ? AND level_id = ?
		 ORDER BY moves ASC, pushes ASC, id ASC
		 LIMIT 1`,
		player, levelID,
	)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CompletedLevels returns the set of level IDs a player has solved.
func (s *Store) CompletedLevels(player string) (map[string]bool, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT level_id FROM completions WHERE player = ?",
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return done, nil
}

// ClearProgress deletes a player's completions of one level, or of every
// level when levelID is empty. Returns the number of deleted records.
func (s *Store) ClearProgress(player, levelID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if levelID == "" {
		res, err = s.db.Exec("DELETE FROM completions WHERE player = ?", player)
	} else {
		res, err = s.db.Exec("DELETE FROM completions WHERE player = ? AND level_id = ?", player, levelID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear progress: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Solves     int
	Players    int
	BestMoves  int
	BestPushes int
	AvgMoves   float64
	LastSolved time.Time
}

// LevelStats retrieves aggregated statistics for a level. A level nobody
// solved yields zero counts.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastSolved any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MIN(moves), 0),
		        COALESCE(MIN(pushes), 0), COALESCE(AVG(moves), 0), MAX(created_at)
		 FROM completions WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Solves, &stats.Players, &stats.BestMoves, &stats.BestPushes, &stats.AvgMoves, &lastSolved)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastSolved = parseTime(lastSolved)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been solved.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), COUNT(DISTINCT player), MIN(moves), MIN(pushes), AVG(moves), MAX(created_at)
		 FROM completions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastSolved any
		if err := rows.Scan(&ls.LevelID, &ls.Solves, &ls.Players, &ls.BestMoves, &ls.BestPushes, &ls.AvgMoves, &lastSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastSolved = parseTime(lastSolved)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompletion(sc scanner) (Completion, error) {
	var c Completion
	var createdAt any
	err := sc.Scan(&c.ID, &c.LevelID, &c.Player, &c.Moves, &c.Pushes, &c.Solution, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return c, err
	}
	if err != nil {
		return c, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
