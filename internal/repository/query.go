package repository

import (
	"strconv"
	"strings"

	"github.com/civicmap/backend/internal/model"
)

// cond is one predicate of a MessageQuery. The sql fragment uses ? markers
// that are renumbered into positional arguments at render time; match
// evaluates the same predicate against an in-memory message.
type cond struct {
	sql   string
	args  []any
	match func(*model.Message) bool
}

// MessageQuery is a composable, lazily-evaluated read-side filter over the
// message store. The zero value selects every message. Each predicate
// method returns a new query and leaves the receiver untouched; chaining
// combines predicates with AND. A query carries no store state: evaluating
// the same query twice reflects the store as it is at each call.
type MessageQuery struct {
	conds    []cond
	listOnly bool
}

func (q MessageQuery) with(c cond) MessageQuery {
	conds := make([]cond, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	q.conds = append(conds, c)
	return q
}

// Active selects messages the moderation team has picked up but not yet
// closed: status strictly greater than New, strictly less than Closed, and
// not soft-deleted. Untouched New messages are excluded on purpose, as is
// Closed itself.
func (q MessageQuery) Active() MessageQuery {
	return q.with(cond{
		sql:  "status > ? AND status < ? AND is_removed = false",
		args: []any{model.StatusNew, model.StatusClosed},
		match: func(m *model.Message) bool {
			return m.Status > model.StatusNew && m.Status < model.StatusClosed && !m.IsRemoved
		},
	})
}

// Closed selects messages with status exactly Closed. There is no
// is_removed predicate here: a closed message stays in this view even
// after a soft delete.
func (q MessageQuery) Closed() MessageQuery {
	return q.with(cond{
		sql:  "status = ?",
		args: []any{model.StatusClosed},
		match: func(m *model.Message) bool {
			return m.Status == model.StatusClosed
		},
	})
}

// StatusIs selects messages with exactly the given status.
func (q MessageQuery) StatusIs(s model.MessageStatus) MessageQuery {
	return q.with(cond{
		sql:  "status = ?",
		args: []any{s},
		match: func(m *model.Message) bool {
			return m.Status == s
		},
	})
}

// Deleted selects soft-deleted messages.
func (q MessageQuery) Deleted() MessageQuery {
	return q.with(cond{
		sql: "is_removed = true",
		match: func(m *model.Message) bool {
			return m.IsRemoved
		},
	})
}

// List restricts the produced fields to the lightweight listing projection
// (id, title, message, status, date_add). It filters no rows.
func (q MessageQuery) List() MessageQuery {
	q.listOnly = true
	return q
}

// ListOnly reports whether the query asked for the listing projection.
func (q MessageQuery) ListOnly() bool {
	return q.listOnly
}

// Matches evaluates all predicates against m in memory. In-memory stores
// and tests use it; the result must agree with the rendered SQL.
func (q MessageQuery) Matches(m *model.Message) bool {
	for _, c := range q.conds {
		if !c.match(m) {
			return false
		}
	}
	return true
}

// whereClause renders the predicates as a SQL WHERE clause with positional
// arguments numbered from start. An empty query renders as "" with no args.
func (q MessageQuery) whereClause(start int) (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.conds))
	var args []any
	n := start
	for _, c := range q.conds {
		sql := c.sql
		for strings.Contains(sql, "?") {
			sql = strings.Replace(sql, "?", "$"+strconv.Itoa(n), 1)
			n++
		}
		parts = append(parts, "("+sql+")")
		args = append(args, c.args...)
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}
