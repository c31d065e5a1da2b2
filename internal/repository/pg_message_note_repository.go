package repository

import (
	"context"
	"errors"

	"github.com/civicmap/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgMessageNoteRepository is the PostgreSQL implementation of
// MessageNoteRepository.
type PgMessageNoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageNoteRepository creates a PgMessageNoteRepository backed by
// the given pool.
func NewPgMessageNoteRepository(pool *pgxpool.Pool) *PgMessageNoteRepository {
	return &PgMessageNoteRepository{pool: pool}
}

var _ MessageNoteRepository = (*PgMessageNoteRepository)(nil)

const noteSelectCols = `id, message_id, user_id, note, date_add, last_edit`

func scanNote(scan func(...any) error) (*model.MessageNote, error) {
	var n model.MessageNote
	if err := scan(&n.ID, &n.MessageID, &n.UserID, &n.Note, &n.DateAdd, &n.LastEdit); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts the note and populates ID and timestamps.
func (r *PgMessageNoteRepository) Create(ctx context.Context, note *model.MessageNote) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO message_notes (message_id, user_id, note)
		 VALUES ($1, $2, $3)
		 RETURNING id, date_add, last_edit`,
		note.MessageID, note.UserID, note.Note,
	).Scan(&note.ID, &note.DateAdd, &note.LastEdit)
}

// FindByID returns one note or ErrNotFound.
func (r *PgMessageNoteRepository) FindByID(ctx context.Context, id int64) (*model.MessageNote, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+noteSelectCols+` FROM message_notes WHERE id = $1`, id)
	n, err := scanNote(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return n, err
}

// ListByMessage returns the notes of one message in creation order.
func (r *PgMessageNoteRepository) ListByMessage(ctx context.Context, messageID int64) ([]*model.MessageNote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+noteSelectCols+` FROM message_notes WHERE message_id = $1 ORDER BY id ASC`,
		messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.MessageNote
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote replaces the note text and refreshes last_edit.
func (r *PgMessageNoteRepository) UpdateNote(ctx context.Context, id int64, note string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE message_notes SET note = $1, last_edit = NOW() WHERE id = $2`, note, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the note.
func (r *PgMessageNoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM message_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
