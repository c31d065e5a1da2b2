package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/civicmap/backend/internal/config"
	"github.com/civicmap/backend/internal/logging"
	"github.com/civicmap/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestMain(m *testing.M) {
	logging.Setup()
	os.Exit(m.Run())
}

// testPool connects to the database configured via DATABASE_URL (or the
// development default). Integration tests are skipped in -short runs.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pool, err := NewPool(context.Background(), config.Load().DatabaseURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func containsMessageID(msgs []*model.Message, id int64) bool {
	for _, m := range msgs {
		if m.ID == id {
			return true
		}
	}
	return false
}

func TestPgMessageRepository_CreateAndFindByID(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	catRepo := NewPgMessageCategoryRepository(pool)
	cat := &model.Category{Name: "Roads", Slug: "roads-" + uuid.NewString(), Order: 1}
	if err := catRepo.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	repo := NewPgMessageRepository(pool)
	userID := uuid.NewString()
	start := time.Now().Add(time.Hour).Truncate(time.Second)
	msg := &model.Message{
		Title:       "Broken streetlight",
		Message:     "The light at the corner has been out for a week.",
		Status:      model.StatusNew,
		StartDate:   &start,
		Address:     "Corner of 1st and Main",
		Location:    model.MultiPoint{{Lon: 30.52, Lat: 50.45}, {Lon: 30.53, Lat: 50.46}},
		CategoryIDs: []int64{cat.ID},
		UserID:      userID,
	}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if msg.ID == 0 {
		t.Error("expected ID to be set after Create")
	}
	if msg.DateAdd.IsZero() || msg.LastEdit.IsZero() {
		t.Error("expected timestamps to be set after Create")
	}

	found, err := repo.FindByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Title != msg.Title || found.Message != msg.Message || found.UserID != userID {
		t.Errorf("round trip mismatch: %+v", found)
	}
	if found.Status != model.StatusNew {
		t.Errorf("expected status New, got %v", found.Status)
	}
	if len(found.Location) != 2 || found.Location[0] != (model.Point{Lon: 30.52, Lat: 50.45}) {
		t.Errorf("location round trip mismatch: %v", found.Location)
	}
	if len(found.CategoryIDs) != 1 || found.CategoryIDs[0] != cat.ID {
		t.Errorf("category links mismatch: %v", found.CategoryIDs)
	}
}

func TestPgMessageRepository_LastEditIncreases(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPgMessageRepository(pool)

	msg := &model.Message{Message: "initial body", Status: model.StatusNew, UserID: uuid.NewString()}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first := msg.LastEdit
	time.Sleep(5 * time.Millisecond)
	msg.Message = "edited body"
	if err := repo.Update(ctx, msg); err != nil {
		t.Fatalf("Update: %v", err)
	}
	second := msg.LastEdit
	if !second.After(first) {
		t.Errorf("expected last_edit to increase: %v then %v", first, second)
	}

	time.Sleep(5 * time.Millisecond)
	if err := repo.UpdateStatus(ctx, msg.ID, model.StatusUnverified); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	found, err := repo.FindByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.LastEdit.After(second) {
		t.Errorf("expected last_edit to increase again: %v then %v", second, found.LastEdit)
	}
	if !found.DateAdd.Equal(msg.DateAdd) {
		t.Errorf("date_add must not change on update: %v vs %v", msg.DateAdd, found.DateAdd)
	}
}

func TestPgMessageRepository_ViewMembership(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPgMessageRepository(pool)

	msg := &model.Message{Message: "report under moderation", Status: model.StatusNew, UserID: uuid.NewString()}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// New is not active.
	active, err := repo.Find(ctx, MessageQuery{}.Active())
	if err != nil {
		t.Fatalf("Find active: %v", err)
	}
	if containsMessageID(active, msg.ID) {
		t.Error("a New message must not appear in the active view")
	}

	if err := repo.UpdateStatus(ctx, msg.ID, model.StatusVerified); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	active, _ = repo.Find(ctx, MessageQuery{}.Active())
	if !containsMessageID(active, msg.ID) {
		t.Error("a Verified message must appear in the active view")
	}

	// Close, then soft-delete: gone from active, still closed.
	if err := repo.UpdateStatus(ctx, msg.ID, model.StatusClosed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := repo.SetRemoved(ctx, msg.ID, true); err != nil {
		t.Fatalf("SetRemoved: %v", err)
	}

	active, _ = repo.Find(ctx, MessageQuery{}.Active())
	if containsMessageID(active, msg.ID) {
		t.Error("a soft-deleted message must not appear in the active view")
	}
	closed, _ := repo.Find(ctx, MessageQuery{}.Closed())
	if !containsMessageID(closed, msg.ID) {
		t.Error("a soft-deleted closed message must stay in the closed view")
	}
	deleted, _ := repo.Find(ctx, MessageQuery{}.Deleted())
	if !containsMessageID(deleted, msg.ID) {
		t.Error("a soft-deleted message must appear in the deleted view")
	}

	// The row itself is still there.
	found, err := repo.FindByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("FindByID after soft delete: %v", err)
	}
	if !found.IsRemoved {
		t.Error("expected is_removed to be set")
	}
}

func TestPgMessageRepository_MissingRow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPgMessageRepository(pool)

	if _, err := repo.FindByID(ctx, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, -1, model.StatusClosed); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, &model.Message{ID: -1, Message: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
}

func TestPgMessageNoteRepository_CreateListAndCascade(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	msgRepo := NewPgMessageRepository(pool)
	noteRepo := NewPgMessageNoteRepository(pool)

	msg := &model.Message{Message: "needs review", Status: model.StatusNew, UserID: uuid.NewString()}
	if err := msgRepo.Create(ctx, msg); err != nil {
		t.Fatalf("create message: %v", err)
	}

	moderator := uuid.NewString()
	for _, text := range []string{"called the city office", "confirmed by phone"} {
		n := &model.MessageNote{MessageID: msg.ID, UserID: moderator, Note: text}
		if err := noteRepo.Create(ctx, n); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	notes, err := noteRepo.ListByMessage(ctx, msg.ID)
	if err != nil {
		t.Fatalf("ListByMessage: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Note != "called the city office" || notes[1].Note != "confirmed by phone" {
		t.Errorf("expected creation order, got [%q %q]", notes[0].Note, notes[1].Note)
	}

	// Hard-deleting the message cascades to its notes.
	if _, err := pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, msg.ID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	notes, err = noteRepo.ListByMessage(ctx, msg.ID)
	if err != nil {
		t.Fatalf("ListByMessage after cascade: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected notes to cascade away, got %d", len(notes))
	}
}
