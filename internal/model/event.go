package model

import "time"

// Event is an occurrence record ingested from an external source or
// entered by an administrator. It is the read-mostly sibling of Message:
// no moderation workflow, no notes, no soft delete; moderators only
// toggle IsActive. Source records where the event came from.
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title,omitempty"`
	Message     string     `json:"message"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	Address     string     `json:"address,omitempty"`
	Location    MultiPoint `json:"location,omitempty"`
	CategoryIDs []int64    `json:"category_ids,omitempty"`
	Source      string     `json:"source,omitempty"`
	IsActive    bool       `json:"is_active"`
	DateAdd     time.Time  `json:"date_add"`
	LastEdit    time.Time  `json:"last_edit"`
}
