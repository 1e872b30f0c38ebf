// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analyses, trend snapshots, and insights in a
// local SQLite database so runs accumulate history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bionicop/seo-flow/pkg/types"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS keywords (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword_id INTEGER NOT NULL REFERENCES keywords(id) ON DELETE CASCADE,
	analyzed_at TEXT NOT NULL,
	competition_score INTEGER NOT NULL,
	opportunity_score INTEGER NOT NULL,
	difficulty TEXT NOT NULL,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword_id INTEGER NOT NULL REFERENCES keywords(id) ON DELETE CASCADE,
	taken_at TEXT NOT NULL,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS insights (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword_id INTEGER NOT NULL REFERENCES keywords(id) ON DELETE CASCADE,
	generated_at TEXT NOT NULL,
	model TEXT NOT NULL,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_keyword ON analyses(keyword_id, analyzed_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_keyword ON snapshots(keyword_id, taken_at);
CREATE INDEX IF NOT EXISTS idx_insights_keyword ON insights(keyword_id, generated_at);
`

// NewStore opens (creating if necessary) the database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, "seo-flow.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// keywordID returns the row id for keyword, inserting it if new. Must run
// inside tx.
func keywordID(ctx context.Context, tx *sql.Tx, keyword string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO keywords (keyword, created_at) VALUES (?, ?) ON CONFLICT(keyword) DO NOTHING`,
		keyword, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM keywords WHERE keyword = ?`, keyword).Scan(&id)
	return id, err
}

// RecordAnalysis stores one keyword analysis.
func (s *Store) RecordAnalysis(ctx context.Context, a *types.KeywordAnalysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := keywordID(ctx, tx, a.Keyword)
	if err != nil {
		return fmt.Errorf("resolving keyword: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO analyses (keyword_id, analyzed_at, competition_score, opportunity_score, difficulty, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, a.AnalyzedAt.UTC().Format(time.RFC3339),
		a.Competition.CompetitionScore, a.Competition.OpportunityScore,
		string(a.Competition.Difficulty), string(payload))
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	return tx.Commit()
}

// LatestAnalysis returns the newest stored analysis for keyword, or an
// error when none exists.
func (s *Store) LatestAnalysis(ctx context.Context, keyword string) (*types.KeywordAnalysis, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT a.payload FROM analyses a
		 JOIN keywords k ON k.id = a.keyword_id
		 WHERE k.keyword = ? ORDER BY a.analyzed_at DESC LIMIT 1`,
		keyword).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stored analysis for %q", keyword)
	}
	if err != nil {
		return nil, err
	}

	var a types.KeywordAnalysis
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("parsing stored analysis: %w", err)
	}
	return &a, nil
}

// History returns stored analyses for keyword, newest first, up to limit.
func (s *Store) History(ctx context.Context, keyword string, limit int) ([]types.KeywordAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.payload FROM analyses a
		 JOIN keywords k ON k.id = a.keyword_id
		 WHERE k.keyword = ? ORDER BY a.analyzed_at DESC LIMIT ?`,
		keyword, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.KeywordAnalysis
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var a types.KeywordAnalysis
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("parsing stored analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RecordSnapshot stores one trend snapshot.
func (s *Store) RecordSnapshot(ctx context.Context, snap types.TrendSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := keywordID(ctx, tx, snap.Keyword)
	if err != nil {
		return fmt.Errorf("resolving keyword: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (keyword_id, taken_at, payload) VALUES (?, ?, ?)`,
		id, snap.TakenAt.UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return tx.Commit()
}

// Snapshots returns stored trend snapshots for keyword taken at or after
// since, oldest first.
func (s *Store) Snapshots(ctx context.Context, keyword string, since time.Time) ([]types.TrendSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sn.payload FROM snapshots sn
		 JOIN keywords k ON k.id = sn.keyword_id
		 WHERE k.keyword = ? AND sn.taken_at >= ? ORDER BY sn.taken_at ASC`,
		keyword, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.TrendSnapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var snap types.TrendSnapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("parsing stored snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// RecordInsight stores one AI insight.
func (s *Store) RecordInsight(ctx context.Context, ins *types.Insight) error {
	payload, err := json.Marshal(ins)
	if err != nil {
		return fmt.Errorf("marshaling insight: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := keywordID(ctx, tx, ins.Keyword)
	if err != nil {
		return fmt.Errorf("resolving keyword: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO insights (keyword_id, generated_at, model, payload) VALUES (?, ?, ?, ?)`,
		id, ins.GeneratedAt.UTC().Format(time.RFC3339), ins.Model, string(payload))
	if err != nil {
		return fmt.Errorf("inserting insight: %w", err)
	}
	return tx.Commit()
}

// LatestInsight returns the newest stored insight for keyword, or an
// error when none exists.
func (s *Store) LatestInsight(ctx context.Context, keyword string) (*types.Insight, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT i.payload FROM insights i
		 JOIN keywords k ON k.id = i.keyword_id
		 WHERE k.keyword = ? ORDER BY i.generated_at DESC LIMIT 1`,
		keyword).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stored insight for %q", keyword)
	}
	if err != nil {
		return nil, err
	}

	var ins types.Insight
	if err := json.Unmarshal([]byte(payload), &ins); err != nil {
		return nil, fmt.Errorf("parsing stored insight: %w", err)
	}
	return &ins, nil
}

// Keywords returns every tracked keyword in insertion order.
func (s *Store) Keywords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT keyword FROM keywords ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
