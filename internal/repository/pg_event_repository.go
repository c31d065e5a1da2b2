package repository

import (
	"context"
	"errors"

	"github.com/civicmap/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgEventRepository is the PostgreSQL implementation of EventRepository.
type PgEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgEventRepository creates a PgEventRepository backed by the given pool.
func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

var _ EventRepository = (*PgEventRepository)(nil)

const eventSelectCols = `e.id, e.title, e.message, e.started_at, e.finished_at, e.address,
	ST_AsText(e.location), e.source, e.is_active, e.date_add, e.last_edit,
	COALESCE(array_agg(ec.category_id) FILTER (WHERE ec.category_id IS NOT NULL), '{}')`

const eventFrom = ` FROM events e
	LEFT JOIN event_category ec ON ec.event_id = e.id `

func scanEvent(scan func(...any) error) (*model.Event, error) {
	var e model.Event
	var locWKT *string
	var catIDs []int64
	if err := scan(&e.ID, &e.Title, &e.Message, &e.StartedAt, &e.FinishedAt, &e.Address,
		&locWKT, &e.Source, &e.IsActive, &e.DateAdd, &e.LastEdit, &catIDs); err != nil {
		return nil, err
	}
	if locWKT != nil {
		loc, err := model.ParseMultiPoint(*locWKT)
		if err != nil {
			return nil, err
		}
		e.Location = loc
	}
	if len(catIDs) > 0 {
		e.CategoryIDs = catIDs
	}
	return &e, nil
}

// Create inserts the event row and its category links in one transaction
// and populates ID, DateAdd and LastEdit from the database.
func (r *PgEventRepository) Create(ctx context.Context, ev *model.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO events (title, message, started_at, finished_at, address,
		     location, source, is_active)
		 VALUES ($1, $2, $3, $4, $5, ST_GeomFromText(NULLIF($6, ''), 4326), $7, $8)
		 RETURNING id, date_add, last_edit`,
		ev.Title, ev.Message, ev.StartedAt, ev.FinishedAt, ev.Address,
		ev.Location.WKT(), ev.Source, ev.IsActive,
	).Scan(&ev.ID, &ev.DateAdd, &ev.LastEdit)
	if err != nil {
		return err
	}

	if err := insertCategoryLinks(ctx, tx, "event_category", "event_id", ev.ID, ev.CategoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// FindByID returns one event with its category links, or ErrNotFound.
func (r *PgEventRepository) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventSelectCols+eventFrom+`WHERE e.id = $1 GROUP BY e.id`, id)
	e, err := scanEvent(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Update saves the mutable fields of ev and refreshes LastEdit. date_add
// is never written. Category links are replaced via SetCategories.
func (r *PgEventRepository) Update(ctx context.Context, ev *model.Event) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE events
		 SET title = $1, message = $2, started_at = $3, finished_at = $4, address = $5,
		     location = ST_GeomFromText(NULLIF($6, ''), 4326), source = $7, is_active = $8,
		     last_edit = NOW()
		 WHERE id = $9
		 RETURNING last_edit`,
		ev.Title, ev.Message, ev.StartedAt, ev.FinishedAt, ev.Address,
		ev.Location.WKT(), ev.Source, ev.IsActive, ev.ID,
	).Scan(&ev.LastEdit)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetActive toggles moderator visibility and refreshes last_edit.
func (r *PgEventRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET is_active = $1, last_edit = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCategories replaces the event's category links in one transaction.
func (r *PgEventRepository) SetCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE events SET last_edit = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM event_category WHERE event_id = $1`, id); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, "event_category", "event_id", id, categoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// List returns every event, newest first.
func (r *PgEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventSelectCols+eventFrom+`GROUP BY e.id ORDER BY e.date_add DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes the event row. Events have no soft delete; the join-table
// rows go with it via the cascade constraint.
func (r *PgEventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
