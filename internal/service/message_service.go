package service

import (
	"context"

	"github.com/civicmap/backend/internal/model"
	"github.com/civicmap/backend/internal/repository"
)

// MessageService holds the business rules of the citizen-report workflow:
// creation defaults, required-field validation, the immutability of the
// owner and creation timestamp, and the moderation flag/status changes.
type MessageService interface {
	// Create validates and stores a new message. The message enters the
	// workflow as New, inactive, not important, regardless of what the
	// caller put in those fields.
	Create(ctx context.Context, msg *model.Message) error
	Get(ctx context.Context, id int64) (*model.Message, error)
	// Update saves the mutable fields of msg and refreshes LastEdit.
	// Changing UserID or DateAdd is rejected with ErrImmutableField.
	Update(ctx context.Context, msg *model.Message) error
	// SetStatus moves the message to any defined status. No transition
	// order is enforced.
	SetStatus(ctx context.Context, id int64, status model.MessageStatus) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetImportant(ctx context.Context, id int64, important bool) error
	SetCategories(ctx context.Context, id int64, categoryIDs []int64) error
	// SoftDelete flags the message as removed without deleting the row.
	SoftDelete(ctx context.Context, id int64) error

	// Find evaluates an arbitrary composed query.
	Find(ctx context.Context, q repository.MessageQuery) ([]*model.Message, error)
	Active(ctx context.Context) ([]*model.Message, error)
	Closed(ctx context.Context) ([]*model.Message, error)
	Deleted(ctx context.Context) ([]*model.Message, error)
	OfStatus(ctx context.Context, status model.MessageStatus) ([]*model.Message, error)
	// ListItems returns the lightweight listing projection of all messages.
	ListItems(ctx context.Context) ([]*model.MessageListItem, error)
}
