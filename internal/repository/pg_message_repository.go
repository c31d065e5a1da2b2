package repository

import (
	"context"
	"errors"

	"github.com/civicmap/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

var _ MessageRepository = (*PgMessageRepository)(nil)

// Ping verifies the backend connection (DB interface).
func (r *PgMessageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// The location geometry travels as MULTIPOINT well-known text; category
// links are aggregated from the join table. last_edit lives in the legacy
// date_modify column.
const messageSelectCols = `m.id, m.title, m.message, m.status, m.start_date, m.expired_date,
	m.address, ST_AsText(m.location), m.user_id, m.is_active, m.is_important, m.is_removed,
	m.date_add, m.date_modify,
	COALESCE(array_agg(mc.category_id) FILTER (WHERE mc.category_id IS NOT NULL), '{}')`

const messageFrom = ` FROM messages m
	LEFT JOIN message_category mc ON mc.message_id = m.id `

func scanMessage(scan func(...any) error) (*model.Message, error) {
	var m model.Message
	var locWKT *string
	var catIDs []int64
	if err := scan(&m.ID, &m.Title, &m.Message, &m.Status, &m.StartDate, &m.ExpiredDate,
		&m.Address, &locWKT, &m.UserID, &m.IsActive, &m.IsImportant, &m.IsRemoved,
		&m.DateAdd, &m.LastEdit, &catIDs); err != nil {
		return nil, err
	}
	if locWKT != nil {
		loc, err := model.ParseMultiPoint(*locWKT)
		if err != nil {
			return nil, err
		}
		m.Location = loc
	}
	if len(catIDs) > 0 {
		m.CategoryIDs = catIDs
	}
	return &m, nil
}

// Create inserts the message row and its category links in one transaction
// and populates ID, DateAdd and LastEdit from the database.
func (r *PgMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO messages (title, message, status, start_date, expired_date, address,
		     location, user_id, is_active, is_important, is_removed)
		 VALUES ($1, $2, $3, $4, $5, $6,
		     ST_GeomFromText(NULLIF($7, ''), 4326), $8, $9, $10, $11)
		 RETURNING id, date_add, date_modify`,
		msg.Title, msg.Message, msg.Status, msg.StartDate, msg.ExpiredDate, msg.Address,
		msg.Location.WKT(), msg.UserID, msg.IsActive, msg.IsImportant, msg.IsRemoved,
	).Scan(&msg.ID, &msg.DateAdd, &msg.LastEdit)
	if err != nil {
		return err
	}

	if err := insertCategoryLinks(ctx, tx, "message_category", "message_id", msg.ID, msg.CategoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// FindByID returns one message with its category links, or ErrNotFound.
func (r *PgMessageRepository) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+messageSelectCols+messageFrom+`WHERE m.id = $1 GROUP BY m.id`, id)
	m, err := scanMessage(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// Update saves the mutable fields of msg and refreshes LastEdit from the
// database. user_id and date_add are never written. Category links are not
// touched here; use SetCategories.
func (r *PgMessageRepository) Update(ctx context.Context, msg *model.Message) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE messages
		 SET title = $1, message = $2, status = $3, start_date = $4, expired_date = $5,
		     address = $6, location = ST_GeomFromText(NULLIF($7, ''), 4326),
		     is_active = $8, is_important = $9, is_removed = $10,
		     date_modify = NOW()
		 WHERE id = $11
		 RETURNING date_modify`,
		msg.Title, msg.Message, msg.Status, msg.StartDate, msg.ExpiredDate,
		msg.Address, msg.Location.WKT(), msg.IsActive, msg.IsImportant, msg.IsRemoved,
		msg.ID,
	).Scan(&msg.LastEdit)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// UpdateStatus sets the workflow status and refreshes last_edit.
func (r *PgMessageRepository) UpdateStatus(ctx context.Context, id int64, status model.MessageStatus) error {
	return r.setColumn(ctx, id, "status", status)
}

// SetActive toggles the moderator visibility flag.
func (r *PgMessageRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.setColumn(ctx, id, "is_active", active)
}

// SetImportant toggles the urgency flag.
func (r *PgMessageRepository) SetImportant(ctx context.Context, id int64, important bool) error {
	return r.setColumn(ctx, id, "is_important", important)
}

// SetRemoved flips the soft-delete flag. The row is kept either way.
func (r *PgMessageRepository) SetRemoved(ctx context.Context, id int64, removed bool) error {
	return r.setColumn(ctx, id, "is_removed", removed)
}

func (r *PgMessageRepository) setColumn(ctx context.Context, id int64, col string, v any) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE messages SET `+col+` = $1, date_modify = NOW() WHERE id = $2`, v, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCategories replaces the message's category links in one transaction
// and refreshes last_edit.
func (r *PgMessageRepository) SetCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE messages SET date_modify = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM message_category WHERE message_id = $1`, id); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, "message_category", "message_id", id, categoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Find evaluates q against the store and returns matching messages with
// their category links, newest first.
func (r *PgMessageRepository) Find(ctx context.Context, q MessageQuery) ([]*model.Message, error) {
	where, args := q.whereClause(1)
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageSelectCols+messageFrom+where+
			` GROUP BY m.id ORDER BY m.date_add DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// FindList evaluates q and returns only the listing projection, newest
// first. The join table is not consulted; list views do not show links.
func (r *PgMessageRepository) FindList(ctx context.Context, q MessageQuery) ([]*model.MessageListItem, error) {
	where, args := q.whereClause(1)
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, status, date_add FROM messages `+where+
			` ORDER BY date_add DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.MessageListItem
	for rows.Next() {
		var it model.MessageListItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Message, &it.Status, &it.DateAdd); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// insertCategoryLinks inserts one join-table row per category id. Shared
// by the message and event repositories.
func insertCategoryLinks(ctx context.Context, tx pgx.Tx, table, ownerCol string, ownerID int64, categoryIDs []int64) error {
	for _, catID := range categoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+table+` (`+ownerCol+`, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			ownerID, catID); err != nil {
			return err
		}
	}
	return nil
}
