package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/lattice3d/internal/model"
)

// ErrDigestMismatch is returned by Load when stored cells do not hash to the stored digest.
var ErrDigestMismatch = errors.New("checkpoint digest mismatch")

// CheckpointRepository сохраняет снапшоты координат в PostgreSQL.
// Each coordinate is stored as three INTEGER columns.
type CheckpointRepository struct {
	db *pgxpool.Pool
}

// NewCheckpointRepository создаёт новый CheckpointRepository.
func NewCheckpointRepository(db *pgxpool.Pool) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

// Save stores cp, replacing any checkpoint with the same name.
// Digest is recomputed from cp.Extent and cp.Cells.
func (r *CheckpointRepository) Save(ctx context.Context, cp *model.Checkpoint) error {
	digest := model.CheckpointDigest(cp.Extent, cp.Cells)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "checkpoint", cp.Name, "error", err)
		}
	}()

	var createdAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO checkpoints (name, extent_x, extent_y, extent_z, digest)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE
		 SET extent_x = EXCLUDED.extent_x,
		     extent_y = EXCLUDED.extent_y,
		     extent_z = EXCLUDED.extent_z,
		     digest = EXCLUDED.digest,
		     created_at = now()
		 RETURNING created_at`,
		cp.Name, cp.Extent.X, cp.Extent.Y, cp.Extent.Z, digest,
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("upserting checkpoint %q: %w", cp.Name, err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM checkpoint_cells WHERE checkpoint = $1`, cp.Name,
	); err != nil {
		return fmt.Errorf("deleting old cells for checkpoint %q: %w", cp.Name, err)
	}

	if len(cp.Cells) > 0 {
		rows := make([][]any, 0, len(cp.Cells))
		for i, c := range cp.Cells {
			rows = append(rows, []any{cp.Name, int32(i), c.X, c.Y, c.Z})
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"checkpoint_cells"},
			[]string{"checkpoint", "ordinal", "x", "y", "z"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("inserting cells for checkpoint %q: %w", cp.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	cp.Digest = digest
	cp.CreatedAt = createdAt

	slog.Debug("saved checkpoint",
		"checkpoint", cp.Name,
		"extent", cp.Extent,
		"cells", len(cp.Cells))

	return nil
}

// Load returns the checkpoint stored under name, cells in saved order.
// Returns nil, nil if the checkpoint does not exist.
func (r *CheckpointRepository) Load(ctx context.Context, name string) (*model.Checkpoint, error) {
	cp := &model.Checkpoint{Name: name}

	err := r.db.QueryRow(ctx,
		`SELECT extent_x, extent_y, extent_z, digest, created_at
		 FROM checkpoints WHERE name = $1`, name,
	).Scan(&cp.Extent.X, &cp.Extent.Y, &cp.Extent.Z, &cp.Digest, &cp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying checkpoint %q: %w", name, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT x, y, z FROM checkpoint_cells
		 WHERE checkpoint = $1
		 ORDER BY ordinal`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cells for checkpoint %q: %w", name, err)
	}
	defer rows.Close()

	cp.Cells = make([]model.Coord3D, 0, 64)
	for rows.Next() {
		var c model.Coord3D
		if err := rows.Scan(&c.X, &c.Y, &c.Z); err != nil {
			return nil, fmt.Errorf("scanning cell row: %w", err)
		}
		cp.Cells = append(cp.Cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cell rows: %w", err)
	}

	if want := model.CheckpointDigest(cp.Extent, cp.Cells); !bytes.Equal(want, cp.Digest) {
		return nil, fmt.Errorf("loading checkpoint %q: %w", name, ErrDigestMismatch)
	}

	return cp, nil
}

// List returns checkpoint names in alphabetical order.
func (r *CheckpointRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM checkpoints ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collecting checkpoint names: %w", err)
	}
	return names, nil
}

// Delete removes a checkpoint and its cells. Deleting a missing checkpoint is not an error.
func (r *CheckpointRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM checkpoints WHERE name = $1`, name); err != nil {
		return fmt.Errorf("deleting checkpoint %q: %w", name, err)
	}
	return nil
}
