package model

// Role represents the role of a chat message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in the assistant conversation. Immutable once
// appended.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Greeting is the assistant message every conversation is seeded with.
const Greeting = "Hi! I'm ShopWise, your AI shopping assistant. How can I help you today?"

// ChatFallback is appended in place of an assistant reply when the backend
// call fails, so no user turn is ever left unanswered.
const ChatFallback = "I'm sorry, I couldn't process your request. Please try again later."
