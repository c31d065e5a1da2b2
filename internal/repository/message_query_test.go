package repository

import (
	"testing"

	"github.com/civicmap/backend/internal/model"
)

func msgWith(status model.MessageStatus, removed bool) *model.Message {
	return &model.Message{ID: 1, Message: "body", Status: status, IsRemoved: removed}
}

func TestMessageQuery_ZeroValueMatchesEverything(t *testing.T) {
	var q MessageQuery
	for _, s := range []model.MessageStatus{1, 2, 3, 4, 6} {
		if !q.Matches(msgWith(s, false)) || !q.Matches(msgWith(s, true)) {
			t.Errorf("zero query should match status %d", s)
		}
	}
	if where, args := q.whereClause(1); where != "" || args != nil {
		t.Errorf("zero query should render empty WHERE, got %q %v", where, args)
	}
}

func TestMessageQuery_Immutability(t *testing.T) {
	base := MessageQuery{}
	active := base.Active()
	closed := base.Closed()

	// base must stay unrestricted after deriving views from it.
	if !base.Matches(msgWith(model.StatusNew, true)) {
		t.Error("deriving views mutated the base query")
	}
	// the two derived views must not share predicates.
	if active.Matches(msgWith(model.StatusClosed, false)) {
		t.Error("Active query leaked the Closed predicate")
	}
	if !closed.Matches(msgWith(model.StatusClosed, true)) {
		t.Error("Closed query picked up predicates it should not have")
	}

	// appending to a derived query must not mutate its parent.
	both := active.Deleted()
	if active.Matches(msgWith(model.StatusVerified, true)) {
		t.Error("Active should still exclude removed rows")
	}
	if both.Matches(msgWith(model.StatusVerified, true)) {
		t.Error("Active+Deleted can never match: Active excludes removed rows")
	}
}

// Membership semantics of the three canonical views, across the full
// status range and both removal states. Active must use strict
// inequalities: New itself and Closed itself are excluded.
func TestMessageQuery_Membership(t *testing.T) {
	active := MessageQuery{}.Active()
	closed := MessageQuery{}.Closed()
	deleted := MessageQuery{}.Deleted()

	for _, status := range []model.MessageStatus{1, 2, 3, 4, 5, 6} {
		for _, removed := range []bool{false, true} {
			m := msgWith(status, removed)

			wantActive := status > model.StatusNew && status < model.StatusClosed && !removed
			if got := active.Matches(m); got != wantActive {
				t.Errorf("active(status=%d removed=%v) = %v, want %v", status, removed, got, wantActive)
			}

			wantClosed := status == model.StatusClosed
			if got := closed.Matches(m); got != wantClosed {
				t.Errorf("closed(status=%d removed=%v) = %v, want %v", status, removed, got, wantClosed)
			}

			if got := deleted.Matches(m); got != removed {
				t.Errorf("deleted(status=%d removed=%v) = %v, want %v", status, removed, got, removed)
			}
		}
	}
}

func TestMessageQuery_StatusIs(t *testing.T) {
	q := MessageQuery{}.StatusIs(model.StatusPending)
	if !q.Matches(msgWith(model.StatusPending, true)) {
		t.Error("StatusIs should ignore the removal flag")
	}
	if q.Matches(msgWith(model.StatusVerified, false)) {
		t.Error("StatusIs matched a different status")
	}
}

func TestMessageQuery_ListProjectionFlag(t *testing.T) {
	base := MessageQuery{}
	listed := base.Active().List()

	if base.ListOnly() {
		t.Error("List leaked onto the base query")
	}
	if !listed.ListOnly() {
		t.Error("List flag lost")
	}
	// List filters nothing: predicates are unchanged.
	if !listed.Matches(msgWith(model.StatusVerified, false)) {
		t.Error("List changed row filtering")
	}
}

func TestMessageQuery_WhereClauseRendering(t *testing.T) {
	where, args := MessageQuery{}.Active().whereClause(1)
	wantSQL := "WHERE (status > $1 AND status < $2 AND is_removed = false)"
	if where != wantSQL {
		t.Errorf("where = %q, want %q", where, wantSQL)
	}
	if len(args) != 2 || args[0] != model.StatusNew || args[1] != model.StatusClosed {
		t.Errorf("args = %v, want [New Closed]", args)
	}
}

func TestMessageQuery_WhereClauseChainingAndOffset(t *testing.T) {
	q := MessageQuery{}.Closed().Deleted()
	where, args := q.whereClause(3)
	wantSQL := "WHERE (status = $3) AND (is_removed = true)"
	if where != wantSQL {
		t.Errorf("where = %q, want %q", where, wantSQL)
	}
	if len(args) != 1 || args[0] != model.StatusClosed {
		t.Errorf("args = %v, want [Closed]", args)
	}
}
