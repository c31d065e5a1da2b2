package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/civicmap/backend/internal/model"
	"github.com/civicmap/backend/internal/repository"
)

// MessageServiceImpl is the MessageService implementation over a
// MessageRepository.
type MessageServiceImpl struct {
	repo repository.MessageRepository
}

// NewMessageService creates a MessageServiceImpl.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &MessageServiceImpl{repo: repo}
}

// Create validates and stores a new message with workflow defaults.
func (s *MessageServiceImpl) Create(ctx context.Context, msg *model.Message) error {
	if strings.TrimSpace(msg.Message) == "" {
		return &ValidationError{Field: "message"}
	}
	if msg.UserID == "" {
		return &ValidationError{Field: "user"}
	}
	msg.Status = model.StatusNew
	msg.IsActive = false
	msg.IsImportant = false
	msg.IsRemoved = false
	if err := s.repo.Create(ctx, msg); err != nil {
		return err
	}
	slog.Info("message created", "id", msg.ID, "user", msg.UserID)
	return nil
}

// Get returns one message by id.
func (s *MessageServiceImpl) Get(ctx context.Context, id int64) (*model.Message, error) {
	return s.repo.FindByID(ctx, id)
}

// Update saves the mutable fields of msg. The current row is loaded first
// so a changed owner or creation timestamp can be rejected before any
// write happens.
func (s *MessageServiceImpl) Update(ctx context.Context, msg *model.Message) error {
	if strings.TrimSpace(msg.Message) == "" {
		return &ValidationError{Field: "message"}
	}
	current, err := s.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return err
	}
	if msg.UserID != "" && msg.UserID != current.UserID {
		return fmt.Errorf("%w: user", ErrImmutableField)
	}
	if !msg.DateAdd.IsZero() && !msg.DateAdd.Equal(current.DateAdd) {
		return fmt.Errorf("%w: date_add", ErrImmutableField)
	}
	return s.repo.Update(ctx, msg)
}

// SetStatus moves the message to any defined status value.
func (s *MessageServiceImpl) SetStatus(ctx context.Context, id int64, status model.MessageStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	slog.Info("message status changed", "id", id, "status", status)
	return nil
}

// SetActive toggles moderator visibility.
func (s *MessageServiceImpl) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// SetImportant toggles the urgency flag.
func (s *MessageServiceImpl) SetImportant(ctx context.Context, id int64, important bool) error {
	return s.repo.SetImportant(ctx, id, important)
}

// SetCategories replaces the message's category tags.
func (s *MessageServiceImpl) SetCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	return s.repo.SetCategories(ctx, id, categoryIDs)
}

// SoftDelete flags the message as removed. The row stays in the store and
// keeps matching the Closed view if it was closed.
func (s *MessageServiceImpl) SoftDelete(ctx context.Context, id int64) error {
	if err := s.repo.SetRemoved(ctx, id, true); err != nil {
		return err
	}
	slog.Info("message soft-deleted", "id", id)
	return nil
}

// Find evaluates an arbitrary composed query.
func (s *MessageServiceImpl) Find(ctx context.Context, q repository.MessageQuery) ([]*model.Message, error) {
	return s.repo.Find(ctx, q)
}

// Active returns messages in moderation between New and Closed.
func (s *MessageServiceImpl) Active(ctx context.Context) ([]*model.Message, error) {
	return s.repo.Find(ctx, repository.MessageQuery{}.Active())
}

// Closed returns closed messages, soft-deleted ones included.
func (s *MessageServiceImpl) Closed(ctx context.Context) ([]*model.Message, error) {
	return s.repo.Find(ctx, repository.MessageQuery{}.Closed())
}

// Deleted returns soft-deleted messages.
func (s *MessageServiceImpl) Deleted(ctx context.Context) ([]*model.Message, error) {
	return s.repo.Find(ctx, repository.MessageQuery{}.Deleted())
}

// OfStatus returns messages with exactly the given status.
func (s *MessageServiceImpl) OfStatus(ctx context.Context, status model.MessageStatus) ([]*model.Message, error) {
	return s.repo.Find(ctx, repository.MessageQuery{}.StatusIs(status))
}

// ListItems returns the lightweight listing projection of all messages.
func (s *MessageServiceImpl) ListItems(ctx context.Context) ([]*model.MessageListItem, error) {
	return s.repo.FindList(ctx, repository.MessageQuery{}.List())
}
