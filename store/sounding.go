package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraprobe/ves/sounding"
)

// SoundingInfo is one row of ListSoundings: enough to pick a data set
// without decoding its payload.
type SoundingInfo struct {
	Name      string
	Array     sounding.Array
	Points    int
	UpdatedAt time.Time
}

// SaveSounding inserts the sounding or, when the name already exists,
// replaces the stored copy.
func (s *Store) SaveSounding(ctx context.Context, snd *sounding.Sounding) error {
	if err := snd.Validate(); err != nil {
		return err
	}
	if snd.Name == "" {
		return ErrName
	}
	data, err := json.Marshal(snd)
	if err != nil {
		return fmt.Errorf("encode sounding: %w", err)
	}
	now := nowUTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO soundings(name, array, points, data, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			array      = excluded.array,
			points     = excluded.points,
			data       = excluded.data,
			updated_at = excluded.updated_at`,
		snd.Name, snd.Array.String(), snd.Len(), string(data), now, now)
	if err != nil {
		return fmt.Errorf("save sounding: %w", err)
	}
	return nil
}

// GetSounding loads a sounding by name.
func (s *Store) GetSounding(ctx context.Context, name string) (*sounding.Sounding, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM soundings WHERE name = ?", name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sounding %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get sounding: %w", err)
	}
	var snd sounding.Sounding
	if err := json.Unmarshal([]byte(data), &snd); err != nil {
		return nil, fmt.Errorf("decode sounding %q: %w", name, err)
	}
	return &snd, nil
}

// ListSoundings returns the stored soundings by name.
func (s *Store) ListSoundings(ctx context.Context) ([]SoundingInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, array, points, updated_at FROM soundings ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list soundings: %w", err)
	}
	defer rows.Close()

	var out []SoundingInfo
	for rows.Next() {
		var (
			info    SoundingInfo
			arr     string
			updated string
		)
		if err := rows.Scan(&info.Name, &arr, &info.Points, &updated); err != nil {
			return nil, fmt.Errorf("scan sounding row: %w", err)
		}
		a, err := sounding.ParseArray(arr)
		if err != nil {
			return nil, fmt.Errorf("sounding %q: %w", info.Name, err)
		}
		info.Array = a
		info.UpdatedAt = parseTime(updated)
		out = append(out, info)
	}
	return out, rows.Err()
}
