package models

import "time"

// ChatMessage is one message in the shared chat room. The author's display
// name is denormalized onto the row so history reads need no join.
type ChatMessage struct {
	ID        int        `db:"id" json:"id"`
	EmpID     string     `db:"emp_id" json:"emp_id"`
	EmpName   string     `db:"emp_name" json:"emp_name"`
	Message   string     `db:"message" json:"message"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	EditedAt  *time.Time `db:"edited_at" json:"edited_at,omitempty"`
	Deleted   bool       `db:"deleted" json:"-"`
}

// ChatEvent is broadcast over the shared websocket channel.
type ChatEvent struct {
	Type    string       `json:"type"`
	Message *ChatMessage `json:"message,omitempty"`
}
