package models

import "time"

// ConversationSummary is one entry in the backend's conversation registry,
// as returned by POST /conversations/get.
type ConversationSummary struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredMessage is one persisted turn from
// POST /conversations/get/history/{id}.
type StoredMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultTitle is used when the backend omits a conversation title.
const DefaultTitle = "New Chat"
