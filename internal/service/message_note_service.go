package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/civicmap/backend/internal/model"
	"github.com/civicmap/backend/internal/repository"
)

// MessageNoteService manages moderator annotations. It needs the message
// repository as well: a note may only be attached to a message that exists.
type MessageNoteService interface {
	Create(ctx context.Context, note *model.MessageNote) error
	Get(ctx context.Context, id int64) (*model.MessageNote, error)
	ListByMessage(ctx context.Context, messageID int64) ([]*model.MessageNote, error)
	// UpdateNote replaces the note text and refreshes LastEdit.
	UpdateNote(ctx context.Context, id int64, note string) error
	Delete(ctx context.Context, id int64) error
}

// MessageNoteServiceImpl is the MessageNoteService implementation.
type MessageNoteServiceImpl struct {
	notes    repository.MessageNoteRepository
	messages repository.MessageRepository
}

// NewMessageNoteService creates a MessageNoteServiceImpl.
func NewMessageNoteService(notes repository.MessageNoteRepository, messages repository.MessageRepository) MessageNoteService {
	return &MessageNoteServiceImpl{notes: notes, messages: messages}
}

// Create validates and stores a new note. The referenced message must
// exist; a missing message surfaces as repository.ErrNotFound.
func (s *MessageNoteServiceImpl) Create(ctx context.Context, note *model.MessageNote) error {
	if strings.TrimSpace(note.Note) == "" {
		return &ValidationError{Field: "note"}
	}
	if note.UserID == "" {
		return &ValidationError{Field: "user"}
	}
	if _, err := s.messages.FindByID(ctx, note.MessageID); err != nil {
		return err
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return err
	}
	slog.Info("moderator note added", "id", note.ID, "message", note.MessageID, "user", note.UserID)
	return nil
}

// Get returns one note by id.
func (s *MessageNoteServiceImpl) Get(ctx context.Context, id int64) (*model.MessageNote, error) {
	return s.notes.FindByID(ctx, id)
}

// ListByMessage returns a message's notes in creation order.
func (s *MessageNoteServiceImpl) ListByMessage(ctx context.Context, messageID int64) ([]*model.MessageNote, error) {
	return s.notes.ListByMessage(ctx, messageID)
}

// UpdateNote replaces the note text.
func (s *MessageNoteServiceImpl) UpdateNote(ctx context.Context, id int64, note string) error {
	if strings.TrimSpace(note) == "" {
		return &ValidationError{Field: "note"}
	}
	return s.notes.UpdateNote(ctx, id, note)
}

// Delete removes the note.
func (s *MessageNoteServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
