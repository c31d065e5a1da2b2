package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/civicmap/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCategoryRepository is the PostgreSQL implementation of
// CategoryRepository. The table is fixed at construction time so the
// message and event registries stay fully isolated while sharing one
// implementation.
type PgCategoryRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewPgMessageCategoryRepository creates the registry for message categories.
func NewPgMessageCategoryRepository(pool *pgxpool.Pool) *PgCategoryRepository {
	return &PgCategoryRepository{pool: pool, table: "message_categories"}
}

// NewPgEventCategoryRepository creates the registry for event categories.
func NewPgEventCategoryRepository(pool *pgxpool.Pool) *PgCategoryRepository {
	return &PgCategoryRepository{pool: pool, table: "event_categories"}
}

var _ CategoryRepository = (*PgCategoryRepository)(nil)

// order is a reserved word in SQL and kept as the legacy column name, so it
// is quoted everywhere.
const categorySelectCols = `id, name, description, slug, "order"`

func scanCategory(scan func(...any) error) (*model.Category, error) {
	var c model.Category
	if err := scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.Order); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the category and populates its ID.
func (r *PgCategoryRepository) Create(ctx context.Context, cat *model.Category) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO `+r.table+` (name, description, slug, "order")
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		cat.Name, cat.Description, cat.Slug, cat.Order,
	).Scan(&cat.ID)
}

// Update applies the non-nil fields of patch. A patch with nothing set is
// a no-op that succeeds even for a missing id.
func (r *PgCategoryRepository) Update(ctx context.Context, id int64, patch model.CategoryPatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.Order != nil {
		add(`"order"`, *patch.Order)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	tag, err := r.pool.Exec(ctx,
		`UPDATE `+r.table+` SET `+strings.Join(sets, ", ")+
			` WHERE id = $`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all categories ascending by their order field.
func (r *PgCategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categorySelectCols+` FROM `+r.table+` ORDER BY "order" ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []*model.Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// FindByID returns one category or ErrNotFound.
func (r *PgCategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+categorySelectCols+` FROM `+r.table+` WHERE id = $1`, id)
	c, err := scanCategory(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// FindBySlug returns the category with the given URL-safe identifier.
func (r *PgCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+categorySelectCols+` FROM `+r.table+` WHERE slug = $1`, slug)
	c, err := scanCategory(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}
