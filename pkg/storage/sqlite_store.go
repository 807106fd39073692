package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// Store wraps an embedded SQLite database holding full group snapshots, one
// row per group. It uses modernc.org/sqlite for CGO-less builds and
// implements group.Snapshotter.
type Store struct {
	dbPath string
	db     *sql.DB
}

// NewStore creates a new Store pointing to dbPath. Call Init() before using it.
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// Init opens the SQLite database, configures pragmas, and ensures the schema exists.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if s.dbPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	// Pragmas for durability and concurrency
	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA synchronous=NORMAL;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return fmt.Errorf("set pragma: %w", err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveGroups replaces the persisted snapshot set with the provided groups,
// atomically.
func (s *Store) SaveGroups(groups []*group.Group) error {
	if s.db == nil {
		return fmt.Errorf("store not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM groups`); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, g := range groups {
		rolesJSON, err := json.Marshal(g.Roles)
		if err != nil {
			return fmt.Errorf("marshal roles for group %s: %w", g.ID, err)
		}
		membersJSON, err := json.Marshal(g.Members)
		if err != nil {
			return fmt.Errorf("marshal members for group %s: %w", g.ID, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO groups (id, channel_id, title, description, start_time, total_capacity, roles, members, creator_id, closed, pinged, updated_at)
	         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.ChannelID, g.Title, g.Description,
			g.StartTime.UTC().Format(time.RFC3339), g.TotalCapacity,
			string(rolesJSON), string(membersJSON),
			g.CreatorID, boolToInt(g.Closed), boolToInt(g.Pinged), now,
		); err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// LoadGroups reads all persisted group snapshots. Rows whose start time or
// role/member payloads fail to decode are skipped with a log entry instead of
// failing the whole load.
func (s *Store) LoadGroups() ([]*group.Group, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	rows, err := s.db.Query(
		`SELECT id, channel_id, title, description, start_time, total_capacity, roles, members, creator_id, closed, pinged FROM groups`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*group.Group
	for rows.Next() {
		var (
			g          group.Group
			startRaw   string
			rolesRaw   string
			membersRaw string
			closed     int
			pinged     int
		)
		if err := rows.Scan(
			&g.ID, &g.ChannelID, &g.Title, &g.Description,
			&startRaw, &g.TotalCapacity, &rolesRaw, &membersRaw,
			&g.CreatorID, &closed, &pinged,
		); err != nil {
			return nil, err
		}

		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			log.ErrorLogger().Error("Skipping group with unparseable start time", "id", g.ID, "start", startRaw)
			continue
		}
		if err := json.Unmarshal([]byte(rolesRaw), &g.Roles); err != nil {
			log.ErrorLogger().Error("Skipping group with corrupt role table", "id", g.ID, "err", err)
			continue
		}
		if err := json.Unmarshal([]byte(membersRaw), &g.Members); err != nil {
			log.ErrorLogger().Error("Skipping group with corrupt member lists", "id", g.ID, "err", err)
			continue
		}

		g.StartTime = start
		g.Closed = closed != 0
		g.Pinged = pinged != 0
		if g.Members == nil {
			g.Members = make(map[string][]string)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ensureSchema creates required tables and indexes if they don't exist.
func ensureSchema(db *sql.DB) error {
	const createGroups = `
CREATE TABLE IF NOT EXISTS groups (
  id             TEXT PRIMARY KEY,
  channel_id     TEXT NOT NULL,
  title          TEXT NOT NULL,
  description    TEXT,
  start_time     TEXT NOT NULL,
  total_capacity INTEGER NOT NULL,
  roles          TEXT NOT NULL,
  members        TEXT NOT NULL,
  creator_id     TEXT NOT NULL,
  closed         INTEGER NOT NULL DEFAULT 0,
  pinged         INTEGER NOT NULL DEFAULT 0,
  updated_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_groups_start ON groups(start_time);`

	if _, err := db.Exec(createGroups); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
