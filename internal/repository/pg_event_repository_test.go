package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/civicmap/backend/internal/model"
	"github.com/google/uuid"
)

func TestPgEventRepository_CreateAndFindByID(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	catRepo := NewPgEventCategoryRepository(pool)
	cat := &model.Category{Name: "Road works", Slug: "works-" + uuid.NewString(), Order: 1}
	if err := catRepo.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	repo := NewPgEventRepository(pool)
	started := time.Now().Truncate(time.Second)
	ev := &model.Event{
		Title:       "Bridge closure",
		Message:     "The north bridge is closed for repairs.",
		StartedAt:   &started,
		Address:     "North bridge",
		Location:    model.MultiPoint{{Lon: 21.01, Lat: 52.23}},
		CategoryIDs: []int64{cat.ID},
		Source:      "city-roadworks-feed",
	}
	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ev.ID == 0 {
		t.Error("expected ID to be set after Create")
	}

	found, err := repo.FindByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Title != ev.Title || found.Message != ev.Message || found.Source != ev.Source {
		t.Errorf("round trip mismatch: %+v", found)
	}
	if found.IsActive {
		t.Error("a fresh event must not be active")
	}
	if len(found.Location) != 1 || found.Location[0] != (model.Point{Lon: 21.01, Lat: 52.23}) {
		t.Errorf("location round trip mismatch: %v", found.Location)
	}
	if len(found.CategoryIDs) != 1 || found.CategoryIDs[0] != cat.ID {
		t.Errorf("category links mismatch: %v", found.CategoryIDs)
	}
}

func TestPgEventRepository_SetActiveAndDelete(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPgEventRepository(pool)

	ev := &model.Event{Message: "temporary event", Source: "test"}
	if err := repo.Create(ctx, ev); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.SetActive(ctx, ev.ID, true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	found, err := repo.FindByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.IsActive {
		t.Error("expected event to be active")
	}

	// Events are hard-deleted; the row is gone afterwards.
	if err := repo.Delete(ctx, ev.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, ev.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, ev.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
