package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lattice3d/internal/model"
)

func TestCheckpointRepository_SaveLoad(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCheckpointRepository(pool)
	ctx := context.Background()

	cells := []model.Coord3D{{X: 3, Y: 1, Z: 2}, {X: 0, Y: 0, Z: 0}, {X: -5, Y: 7, Z: 1 << 30}}
	cp := model.NewCheckpoint("run-1", model.NewCoord3D(4, 8, 16), cells)

	require.NoError(t, repo.Save(ctx, cp))
	assert.False(t, cp.CreatedAt.IsZero(), "Save must set CreatedAt")

	got, err := repo.Load(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, cp.Extent, got.Extent)
	assert.Equal(t, cells, got.Cells, "cells must come back in saved order")
	assert.Equal(t, cp.Digest, got.Digest)
}

func TestCheckpointRepository_LoadMissing(t *testing.T) {
	repo := NewCheckpointRepository(setupTestDB(t))

	got, err := repo.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckpointRepository_SaveReplaces(t *testing.T) {
	repo := NewCheckpointRepository(setupTestDB(t))
	ctx := context.Background()

	first := model.NewCheckpoint("run", model.NewCoord3D(2, 2, 2), []model.Coord3D{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}})
	require.NoError(t, repo.Save(ctx, first))

	second := model.NewCheckpoint("run", model.NewCoord3D(3, 3, 3), []model.Coord3D{{X: 2, Y: 2, Z: 2}})
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx, "run")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.NewCoord3D(3, 3, 3), got.Extent)
	assert.Equal(t, []model.Coord3D{{X: 2, Y: 2, Z: 2}}, got.Cells)
}

func TestCheckpointRepository_EmptyCells(t *testing.T) {
	repo := NewCheckpointRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.NewCheckpoint("empty", model.NewCoord3D(1, 1, 1), nil)))

	got, err := repo.Load(ctx, "empty")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Cells)
}

func TestCheckpointRepository_DigestMismatch(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCheckpointRepository(pool)
	ctx := context.Background()

	cp := model.NewCheckpoint("tampered", model.NewCoord3D(4, 4, 4), []model.Coord3D{{X: 1, Y: 2, Z: 3}})
	require.NoError(t, repo.Save(ctx, cp))

	_, err := pool.Exec(ctx, `UPDATE checkpoint_cells SET x = 0 WHERE checkpoint = 'tampered'`)
	require.NoError(t, err)

	_, err = repo.Load(ctx, "tampered")
	assert.ErrorIs(t, err, ErrDigestMismatch)
}

func TestCheckpointRepository_ListDelete(t *testing.T) {
	repo := NewCheckpointRepository(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Save(ctx, model.NewCheckpoint(name, model.NewCoord3D(1, 1, 1), []model.Coord3D{{X: 0, Y: 0, Z: 0}})))
	}

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	names, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)

	got, err := repo.Load(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func BenchmarkCheckpointRepository_Save(b *testing.B) {
	repo := NewCheckpointRepository(setupTestDB(b))
	ctx := context.Background()

	cells := make([]model.Coord3D, 0, 1024)
	for i := range int32(1024) {
		cells = append(cells, model.NewCoord3D(i%16, (i/16)%16, i/256))
	}
	cp := model.NewCheckpoint("bench", model.NewCoord3D(16, 16, 4), cells)

	b.ResetTimer()
	for b.Loop() {
		if err := repo.Save(ctx, cp); err != nil {
			b.Fatalf("Save failed: %v", err)
		}
	}
}
