package model

import "time"

// MessageNote is a moderator annotation attached to one message. A message
// can carry any number of notes; a note never outlives its message.
type MessageNote struct {
	ID        int64     `json:"id"`
	MessageID int64     `json:"message_id"`
	UserID    string    `json:"user_id"`
	Note      string    `json:"note"`
	DateAdd   time.Time `json:"date_add"`
	LastEdit  time.Time `json:"last_edit"`
}
