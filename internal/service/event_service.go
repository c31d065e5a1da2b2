package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/civicmap/backend/internal/model"
	"github.com/civicmap/backend/internal/repository"
)

// EventService manages externally-sourced events. Events carry no
// moderation workflow; moderators only toggle visibility.
type EventService interface {
	Create(ctx context.Context, ev *model.Event) error
	Get(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, ev *model.Event) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetCategories(ctx context.Context, id int64, categoryIDs []int64) error
	// List returns every event, newest first.
	List(ctx context.Context) ([]*model.Event, error)
	// Delete removes the event permanently; events have no soft delete.
	Delete(ctx context.Context, id int64) error
}

// EventServiceImpl is the EventService implementation.
type EventServiceImpl struct {
	repo repository.EventRepository
}

// NewEventService creates an EventServiceImpl.
func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

// Create validates and stores a new event. Ingested events start hidden
// until a moderator activates them.
func (s *EventServiceImpl) Create(ctx context.Context, ev *model.Event) error {
	if strings.TrimSpace(ev.Message) == "" {
		return &ValidationError{Field: "message"}
	}
	ev.IsActive = false
	if err := s.repo.Create(ctx, ev); err != nil {
		return err
	}
	slog.Info("event created", "id", ev.ID, "source", ev.Source)
	return nil
}

// Get returns one event by id.
func (s *EventServiceImpl) Get(ctx context.Context, id int64) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// Update saves the mutable fields of ev.
func (s *EventServiceImpl) Update(ctx context.Context, ev *model.Event) error {
	if strings.TrimSpace(ev.Message) == "" {
		return &ValidationError{Field: "message"}
	}
	return s.repo.Update(ctx, ev)
}

// SetActive toggles whether the event is shown on the map.
func (s *EventServiceImpl) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	slog.Info("event visibility changed", "id", id, "active", active)
	return nil
}

// SetCategories replaces the event's category tags.
func (s *EventServiceImpl) SetCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	return s.repo.SetCategories(ctx, id, categoryIDs)
}

// List returns every event, newest first.
func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// Delete removes the event permanently.
func (s *EventServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("event deleted", "id", id)
	return nil
}
