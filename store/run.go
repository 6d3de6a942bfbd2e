package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/terraprobe/ves/earth"
)

// Run is one stored interpretation attempt against a sounding.
type Run struct {
	ID           string      // UUID, assigned by SaveRun when empty
	SoundingName string      // must reference a stored sounding
	Kind         string      // "smooth", "parametric", "doi", "fit", ...
	Config       string      // YAML of the options the run used
	Model        earth.Model // recovered model
	PhiD         float64
	RMSPercent   float64
	Iterations   int
	Converged    bool
	CreatedAt    time.Time
}

// SaveRun stores the run and returns its ID, generating UUID and
// timestamp for zero fields. The referenced sounding must already be
// stored.
func (s *Store) SaveRun(ctx context.Context, r *Run) (string, error) {
	if r.SoundingName == "" || r.Kind == "" {
		return "", ErrRun
	}
	if err := r.Model.Validate(); err != nil {
		return "", err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	model, err := json.Marshal(r.Model)
	if err != nil {
		return "", fmt.Errorf("encode model: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs(id, sounding_name, kind, config, model,
			phi_d, rms_percent, iterations, converged, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SoundingName, r.Kind, r.Config, string(model),
		r.PhiD, r.RMSPercent, r.Iterations, r.Converged,
		r.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return r.ID, nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sounding_name, kind, config, model,
			phi_d, rms_percent, iterations, converged, created_at
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns every run stored for the sounding, newest first.
func (s *Store) ListRuns(ctx context.Context, soundingName string) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sounding_name, kind, config, model,
			phi_d, rms_percent, iterations, converged, created_at
		FROM runs WHERE sounding_name = ? ORDER BY rowid DESC`, soundingName)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r       Run
		model   string
		created string
	)
	err := sc.Scan(&r.ID, &r.SoundingName, &r.Kind, &r.Config, &model,
		&r.PhiD, &r.RMSPercent, &r.Iterations, &r.Converged, &created)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(model), &r.Model); err != nil {
		return nil, fmt.Errorf("decode run %s model: %w", r.ID, err)
	}
	r.CreatedAt = parseTime(created)
	return &r, nil
}
