package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/sounding"
	"github.com/terraprobe/ves/store"
)

//---------------------------------------------------------------------
// Helpers
//---------------------------------------------------------------------

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func demoSounding(name string) *sounding.Sounding {
	return &sounding.Sounding{
		Name:    name,
		Array:   sounding.Schlumberger,
		Spacing: []float64{1, 2, 5, 10, 20},
		Rhoa:    []float64{98.2, 95.1, 80.7, 55.3, 38.9},
		StdDev:  []float64{0.03, 0.03, 0.03, 0.05, 0.05},
	}
}

//---------------------------------------------------------------------
// Open
//---------------------------------------------------------------------

func TestOpen_CreatesAndReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "deep", "nested", "ves.db")

	s, err := store.Open(path)
	require.NoError(t, err, "missing parent directories should be created")
	require.NoError(t, s.SaveSounding(ctx, demoSounding("line-1")))
	require.NoError(t, s.Close())

	// Reopening must not disturb existing rows.
	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetSounding(ctx, "line-1")
	require.NoError(t, err)
	assert.Equal(t, "line-1", got.Name)
}

//---------------------------------------------------------------------
// Soundings
//---------------------------------------------------------------------

func TestSounding_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	want := demoSounding("line-7")
	require.NoError(t, s.SaveSounding(ctx, want))

	got, err := s.GetSounding(ctx, "line-7")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sounding mismatch (-want +got):\n%s", diff)
	}
}

func TestSounding_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	snd := demoSounding("line-2")
	require.NoError(t, s.SaveSounding(ctx, snd))

	snd.Rhoa[0] = 123.4
	snd.Array = sounding.Wenner
	require.NoError(t, s.SaveSounding(ctx, snd))

	got, err := s.GetSounding(ctx, "line-2")
	require.NoError(t, err)
	assert.Equal(t, 123.4, got.Rhoa[0])
	assert.Equal(t, sounding.Wenner, got.Array)

	infos, err := s.ListSoundings(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1, "upsert must not duplicate")
	assert.Equal(t, sounding.Wenner, infos[0].Array)
	assert.Equal(t, 5, infos[0].Points)
	assert.False(t, infos[0].UpdatedAt.IsZero())
}

func TestSounding_Errors(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	t.Run("empty name", func(t *testing.T) {
		snd := demoSounding("")
		assert.ErrorIs(t, s.SaveSounding(ctx, snd), store.ErrName)
	})

	t.Run("invalid data", func(t *testing.T) {
		bad := &sounding.Sounding{Name: "x", Array: sounding.Wenner}
		assert.ErrorIs(t, s.SaveSounding(ctx, bad), sounding.ErrNoData)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := s.GetSounding(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

//---------------------------------------------------------------------
// Runs
//---------------------------------------------------------------------

func TestRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.SaveSounding(ctx, demoSounding("line-3")))

	model := earth.TwoLayer(95, 31, 4.2)
	run := &store.Run{
		SoundingName: "line-3",
		Kind:         "smooth",
		Config:       "cells: 24\n",
		Model:        model,
		PhiD:         12.5,
		RMSPercent:   3.1,
		Iterations:   9,
		Converged:    true,
	}

	id, err := s.SaveRun(ctx, run)
	require.NoError(t, err)
	require.Len(t, id, 36, "expected a UUID")

	// SaveRun filled in ID and CreatedAt, so the structs compare whole;
	// time.Time compares through Equal, which ignores the monotonic clock.
	got, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.SaveSounding(ctx, demoSounding("line-4")))
	model := earth.Uniform(42)

	t.Run("missing kind", func(t *testing.T) {
		_, err := s.SaveRun(ctx, &store.Run{SoundingName: "line-4", Model: model})
		assert.ErrorIs(t, err, store.ErrRun)
	})

	t.Run("invalid model", func(t *testing.T) {
		_, err := s.SaveRun(ctx, &store.Run{SoundingName: "line-4", Kind: "smooth"})
		assert.ErrorIs(t, err, earth.ErrEmptyModel)
	})

	t.Run("unknown sounding", func(t *testing.T) {
		_, err := s.SaveRun(ctx, &store.Run{SoundingName: "ghost", Kind: "smooth", Model: model})
		assert.Error(t, err, "foreign key should reject orphan runs")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.GetRun(ctx, "no-such-id")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.SaveSounding(ctx, demoSounding("line-5")))
	require.NoError(t, s.SaveSounding(ctx, demoSounding("line-6")))
	model := earth.Uniform(100)

	for _, kind := range []string{"fit", "smooth", "parametric"} {
		_, err := s.SaveRun(ctx, &store.Run{SoundingName: "line-5", Kind: kind, Model: model})
		require.NoError(t, err)
	}
	_, err := s.SaveRun(ctx, &store.Run{SoundingName: "line-6", Kind: "doi", Model: model})
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, "line-5")
	require.NoError(t, err)
	require.Len(t, runs, 3, "other soundings' runs must not leak in")
	assert.Equal(t, "parametric", runs[0].Kind)
	assert.Equal(t, "smooth", runs[1].Kind)
	assert.Equal(t, "fit", runs[2].Kind)
}
