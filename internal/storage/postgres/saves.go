package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/wildone/internal/game/save"
)

// SaveRepository stores save documents as JSONB rows in the saves table.
type SaveRepository struct {
	db *pgxpool.Pool
}

var _ save.Store = (*SaveRepository)(nil)

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Save inserts or replaces the document in slot.
//
// Precondition: slot must be non-empty; doc must be valid.
// Postcondition: Load(slot) returns an equal document.
func (r *SaveRepository) Save(ctx context.Context, slot string, doc *save.Document) error {
	if slot == "" {
		return errors.New("save slot must not be empty")
	}
	data, err := save.Encode(doc)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO saves (slot, player_name, document)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot) DO UPDATE
		SET player_name = EXCLUDED.player_name,
		    document    = EXCLUDED.document,
		    updated_at  = NOW()`,
		slot, doc.Player.Name, data,
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	return nil
}

// Load returns the document in slot.
//
// Postcondition: Returns an error wrapping save.ErrSaveFileNotFound when the
// slot does not exist, or save.ErrCorruptSaveFile when the row cannot be decoded.
func (r *SaveRepository) Load(ctx context.Context, slot string) (*save.Document, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT document FROM saves WHERE slot = $1`, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
		}
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	doc, err := save.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", slot, err)
	}
	return doc, nil
}

// Delete removes slot.
//
// Postcondition: Returns an error wrapping save.ErrSaveFileNotFound when the
// slot does not exist.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
	}
	return nil
}

// List returns every slot in ascending order.
func (r *SaveRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT slot FROM saves ORDER BY slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning saves: %w", err)
	}
	return slots, nil
}
