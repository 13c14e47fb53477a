package model

import (
	"time"
)

// ActivityType classifies a session activity event.
type ActivityType string

const (
	ActivitySessionCreated  ActivityType = "session_created"
	ActivityQuerySubmitted  ActivityType = "query_submitted"
	ActivityQueryResolved   ActivityType = "query_resolved"
	ActivityQueryFailed     ActivityType = "query_failed"
	ActivityCartAdded       ActivityType = "cart_added"
	ActivityCartRemoved     ActivityType = "cart_removed"
	ActivityFavoriteToggled ActivityType = "favorite_toggled"
	ActivityChatTurn        ActivityType = "chat_turn"
	ActivityNotification    ActivityType = "notification"
)

// ActivityEvent is one entry in the write-only session activity feed.
type ActivityEvent struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Type      ActivityType   `json:"type"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
