package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"pulsecheck/internal/services"
)

// SQLiteStore persists check-ins in a single append-only table. The
// column set mirrors the CSV layout.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS checkins (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		date               TEXT NOT NULL,
		user_pseudo_id     TEXT NOT NULL,
		role               TEXT NOT NULL,
		tenure_bucket      TEXT NOT NULL,
		team_id            TEXT NOT NULL,
		q1                 INTEGER NOT NULL,
		q2                 INTEGER NOT NULL,
		q3                 INTEGER NOT NULL,
		q4                 INTEGER NOT NULL,
		note_text          TEXT DEFAULT '',
		note_text_redacted TEXT DEFAULT '',
		sentiment_score    REAL NOT NULL,
		burnout_flag       INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_checkins_team ON checkins(team_id);
	CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Append(c *services.Checkin) error {
	_, err := s.db.Exec(
		`INSERT INTO checkins (date, user_pseudo_id, role, tenure_bucket, team_id,
			q1, q2, q3, q4, note_text, note_text_redacted, sentiment_score, burnout_flag)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Date, c.PseudoID, string(c.Role), string(c.TenureBucket), c.TeamID,
		c.Q1, c.Q2, c.Q3, c.Q4, c.NoteText, c.NoteTextRedacted, c.SentimentScore, c.BurnoutFlag,
	)
	if err != nil {
		return fmt.Errorf("insert checkin: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadAll() ([]*services.Checkin, error) {
	rows, err := s.db.Query(
		`SELECT date, user_pseudo_id, role, tenure_bucket, team_id,
			q1, q2, q3, q4, note_text, note_text_redacted, sentiment_score, burnout_flag
		 FROM checkins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query checkins: %w", err)
	}
	defer rows.Close()

	var out []*services.Checkin
	for rows.Next() {
		var c services.Checkin
		var role, tenure string
		if err := rows.Scan(&c.Date, &c.PseudoID, &role, &tenure, &c.TeamID,
			&c.Q1, &c.Q2, &c.Q3, &c.Q4, &c.NoteText, &c.NoteTextRedacted,
			&c.SentimentScore, &c.BurnoutFlag); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		c.Role = services.Role(role)
		c.TenureBucket = services.TenureBucket(tenure)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkins: %w", err)
	}
	return out, nil
}
