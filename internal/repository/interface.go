package repository

import (
	"context"

	"github.com/civicmap/backend/internal/model"
)

// DB is the minimal liveness interface over the persistence backend.
type DB interface {
	Ping(ctx context.Context) error
}

// CategoryRepository is the persistence interface for one category
// registry. The message and event domains each get their own instance;
// the two registries share no storage and no identifiers.
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	Update(ctx context.Context, id int64, patch model.CategoryPatch) error
	// List returns every category ordered ascending by the order field.
	List(ctx context.Context) ([]*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// MessageRepository is the persistence interface for citizen reports.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	// Update saves the mutable fields of msg and refreshes LastEdit.
	// The owner and creation timestamp columns are never written.
	Update(ctx context.Context, msg *model.Message) error
	UpdateStatus(ctx context.Context, id int64, status model.MessageStatus) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetImportant(ctx context.Context, id int64, important bool) error
	SetRemoved(ctx context.Context, id int64, removed bool) error
	SetCategories(ctx context.Context, id int64, categoryIDs []int64) error
	// Find evaluates q against the store, newest first.
	Find(ctx context.Context, q MessageQuery) ([]*model.Message, error)
	// FindList evaluates q and returns only the listing projection.
	FindList(ctx context.Context, q MessageQuery) ([]*model.MessageListItem, error)
}

// MessageNoteRepository is the persistence interface for moderator notes.
type MessageNoteRepository interface {
	Create(ctx context.Context, note *model.MessageNote) error
	FindByID(ctx context.Context, id int64) (*model.MessageNote, error)
	// ListByMessage returns the notes of one message in creation order.
	ListByMessage(ctx context.Context, messageID int64) ([]*model.MessageNote, error)
	UpdateNote(ctx context.Context, id int64, note string) error
	Delete(ctx context.Context, id int64) error
}

// EventRepository is the persistence interface for externally-sourced
// events. Events have no soft delete; Delete removes the row.
type EventRepository interface {
	Create(ctx context.Context, ev *model.Event) error
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, ev *model.Event) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetCategories(ctx context.Context, id int64, categoryIDs []int64) error
	// List returns every event, newest first.
	List(ctx context.Context) ([]*model.Event, error)
	Delete(ctx context.Context, id int64) error
}
