package model

import "time"

// MessageStatus marks where a message sits in the moderation workflow.
// Values are persisted as small integers. 5 is a reserved slot that was
// never assigned; the numbering must not be compacted because stored rows
// already use these values.
type MessageStatus int16

const (
	StatusNew        MessageStatus = 1
	StatusUnverified MessageStatus = 2
	StatusVerified   MessageStatus = 3
	StatusPending    MessageStatus = 4
	StatusClosed     MessageStatus = 6
)

// Valid reports whether s is one of the defined workflow statuses.
// The reserved value 5 is not valid.
func (s MessageStatus) Valid() bool {
	switch s {
	case StatusNew, StatusUnverified, StatusVerified, StatusPending, StatusClosed:
		return true
	}
	return false
}

func (s MessageStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUnverified:
		return "unverified"
	case StatusVerified:
		return "verified"
	case StatusPending:
		return "pending"
	case StatusClosed:
		return "closed"
	}
	return "unknown"
}

// Message is a user-submitted report shown on the map.
//
// UserID identifies the author in the external identity system; it is set
// once at creation and never changes afterwards. DateAdd is likewise fixed
// at creation, while LastEdit is refreshed on every save (persisted in the
// legacy date_modify column). Deletion is soft: IsRemoved flags the row
// without removing it.
type Message struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title,omitempty"`
	Message     string        `json:"message"`
	Status      MessageStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	ExpiredDate *time.Time    `json:"expired_date,omitempty"`
	Address     string        `json:"address,omitempty"`
	Location    MultiPoint    `json:"location,omitempty"`
	CategoryIDs []int64       `json:"category_ids,omitempty"`
	UserID      string        `json:"user_id"`
	IsActive    bool          `json:"is_active"`
	IsImportant bool          `json:"is_important"`
	IsRemoved   bool          `json:"is_removed"`
	DateAdd     time.Time     `json:"date_add"`
	LastEdit    time.Time     `json:"last_edit"`
}

// MessageListItem is the lightweight projection used for list views.
// It carries only the fields a listing needs, nothing more.
type MessageListItem struct {
	ID      int64         `json:"id"`
	Title   string        `json:"title,omitempty"`
	Message string        `json:"message"`
	Status  MessageStatus `json:"status"`
	DateAdd time.Time     `json:"date_add"`
}
