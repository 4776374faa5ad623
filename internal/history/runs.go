package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fixed-width so lexical order in SQLite matches chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run summarizes one analyzed subtitle file.
type Run struct {
	ID               string    `json:"id"`
	Path             string    `json:"path"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	Cues             int       `json:"cues"`
	MeanReadingSpeed float64   `json:"mean_reading_speed"`
	MaxReadingSpeed  float64   `json:"max_reading_speed"`
	TooFast          int       `json:"too_fast"`
	TooSlow          int       `json:"too_slow"`
}

const runColumns = "id, path, analyzed_at, cues, mean_reading_speed, max_reading_speed, too_fast, too_slow"

// Record stores run and returns it with its ID and timestamp filled in.
// Non-finite speeds are stored as zero.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if s == nil || s.db == nil {
		return Run{}, errors.New("record run: store is closed")
	}
	run.Path = strings.TrimSpace(run.Path)
	if run.Path == "" {
		return Run{}, errors.New("record run: path is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.AnalyzedAt.IsZero() {
		run.AnalyzedAt = time.Now()
	}
	run.AnalyzedAt = run.AnalyzedAt.UTC()
	run.MeanReadingSpeed = finiteOrZero(run.MeanReadingSpeed)
	run.MaxReadingSpeed = finiteOrZero(run.MaxReadingSpeed)

	err := s.execWithRetry(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Path,
		run.AnalyzedAt.Format(timestampLayout),
		run.Cues,
		run.MeanReadingSpeed,
		run.MaxReadingSpeed,
		run.TooFast,
		run.TooSlow,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// List returns recorded runs, newest first. A limit of zero or less returns
// every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("list runs: store is closed")
	}
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = -1
	}

	var runs []Run
	err := retryOnBusy(ctx, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+runColumns+` FROM runs ORDER BY analyzed_at DESC, rowid DESC LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		runs = runs[:0]
		for rows.Next() {
			run, err := scanRun(rows)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID, or nil when none exists.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("get run: store is closed")
	}
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		analyzedAt string
	)
	if err := row.Scan(
		&run.ID,
		&run.Path,
		&analyzedAt,
		&run.Cues,
		&run.MeanReadingSpeed,
		&run.MaxReadingSpeed,
		&run.TooFast,
		&run.TooSlow,
	); err != nil {
		return Run{}, err
	}
	ts, err := time.Parse(timestampLayout, analyzedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse analyzed_at %q: %w", analyzedAt, err)
	}
	run.AnalyzedAt = ts
	return run, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
