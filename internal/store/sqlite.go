package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("contribution not found")

// SQLiteStore is the file-backed ContributionStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open contribution store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init contribution store: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS contributions (
		id TEXT PRIMARY KEY,
		uploader TEXT,
		character TEXT,
		filename TEXT,
		size_bytes INTEGER,
		format TEXT,
		seed TEXT,
		pitch REAL,
		tempo REAL,
		valence REAL,
		arousal REAL,
		tone TEXT,
		energy TEXT,
		formality TEXT,
		status TEXT,
		reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, c *Contribution) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contributions VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Uploader, c.Character, c.Filename, c.SizeBytes, c.Format,
		c.Seed, c.Pitch, c.Tempo, c.Valence, c.Arousal,
		c.Tone, c.Energy, c.Formality,
		c.Status, c.Reason, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *SQLiteStore) Update(ctx context.Context, c *Contribution) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contributions SET
			seed=?, pitch=?, tempo=?, valence=?, arousal=?,
			tone=?, energy=?, formality=?,
			status=?, reason=?, updated_at=?
		WHERE id=?`,
		c.Seed, c.Pitch, c.Tempo, c.Valence, c.Arousal,
		c.Tone, c.Energy, c.Formality,
		c.Status, c.Reason, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Contribution, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, uploader, character, filename, size_bytes, format,
			seed, pitch, tempo, valence, arousal,
			tone, energy, formality, status, reason, created_at, updated_at
		FROM contributions WHERE id=?`, id)
	c, err := scanContribution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *SQLiteStore) List(ctx context.Context, status Status, limit int) ([]*Contribution, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, uploader, character, filename, size_bytes, format,
			seed, pitch, tempo, valence, arousal,
			tone, energy, formality, status, reason, created_at, updated_at
		FROM contributions WHERE status=? ORDER BY created_at DESC LIMIT ?`,
		status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContribution(row scanner) (*Contribution, error) {
	var c Contribution
	err := row.Scan(&c.ID, &c.Uploader, &c.Character, &c.Filename, &c.SizeBytes, &c.Format,
		&c.Seed, &c.Pitch, &c.Tempo, &c.Valence, &c.Arousal,
		&c.Tone, &c.Energy, &c.Formality, &c.Status, &c.Reason, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
