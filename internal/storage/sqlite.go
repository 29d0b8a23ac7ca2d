// Package storage provides SQLite-based persistence for episode results.
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

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// Episode is the summary of one finished episode.
type Episode struct {
	ID          int64
	Agent       string
	Seed        int64
	Score       int
	Steps       int
	TotalReward float64
	EndReason   string // "ground", "pipe", "score_limit", "max_steps", "cancelled"
	UseLidar    bool
	CreatedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			agent TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			total_reward REAL NOT NULL,
			end_reason TEXT NOT NULL,
			use_lidar INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_agent ON episodes(agent);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(agent, score DESC);
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

const insertEpisode = `INSERT INTO episodes
	(agent, seed, score, steps, total_reward, end_reason, use_lidar)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// SaveEpisode records one episode and returns its ID.
func (s *Store) SaveEpisode(e Episode) (int64, error) {
	result, err := s.db.Exec(insertEpisode,
		e.Agent, e.Seed, e.Score, e.Steps, e.TotalReward, e.EndReason, e.UseLidar,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveEpisodes records a batch of episodes in one transaction.
func (s *Store) SaveEpisodes(episodes []Episode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertEpisode)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range episodes {
		if _, err := stmt.Exec(e.Agent, e.Seed, e.Score, e.Steps, e.TotalReward, e.EndReason, e.UseLidar); err != nil {
			return fmt.Errorf("storage: cannot save episode: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit episodes: %w", err)
	}
	return nil
}

// TopEpisodes retrieves the best N episodes, optionally for one agent.
// An empty agent matches every agent. Results are ordered by score descending.
func (s *Store) TopEpisodes(agent string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, agent, seed, score, steps, total_reward, end_reason, use_lidar, created_at
		 FROM episodes
		 WHERE ? = '' OR agent = ?
		 ORDER BY score DESC, total_reward DESC, id ASC
		 LIMIT ?`,
		agent, agent, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Agent, &e.Seed, &e.Score, &e.Steps, &e.TotalReward, &e.EndReason, &e.UseLidar, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// BestScore returns the highest score for the given agent.
// Returns 0 if no episodes exist.
func (s *Store) BestScore(agent string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM episodes WHERE agent = ?",
		agent,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearEpisodes deletes all episodes for the given agent.
func (s *Store) ClearEpisodes(agent string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE agent = ?", agent)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// AgentStats contains aggregated statistics for one agent.
type AgentStats struct {
	Agent      string
	Episodes   int
	BestScore  int
	AvgScore   float64
	AvgSteps   float64
	AvgReward  float64
	LastPlayed time.Time
}

// GetAgentStats retrieves aggregated statistics for a specific agent.
func (s *Store) GetAgentStats(agent string) (*AgentStats, error) {
	stats := &AgentStats{Agent: agent}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(steps), 0), COALESCE(AVG(total_reward), 0)
		 FROM episodes WHERE agent = ?`,
		agent,
	).Scan(&stats.Episodes, &stats.BestScore, &stats.AvgScore, &stats.AvgSteps, &stats.AvgReward)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get agent stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE agent = ? ORDER BY created_at DESC LIMIT 1`,
		agent,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllAgentStats retrieves statistics for every agent with stored episodes.
func (s *Store) GetAllAgentStats() (map[string]*AgentStats, error) {
	rows, err := s.db.Query(
		`SELECT agent, COUNT(*), MAX(score), AVG(score), AVG(steps), AVG(total_reward), MAX(created_at)
		 FROM episodes
		 GROUP BY agent`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all agent stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*AgentStats)
	for rows.Next() {
		var st AgentStats
		var lastPlayed any
		if err := rows.Scan(&st.Agent, &st.Episodes, &st.BestScore, &st.AvgScore, &st.AvgSteps, &st.AvgReward, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Agent] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
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
