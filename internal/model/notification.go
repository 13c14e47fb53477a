package model

// Severity classifies a user-visible notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification is the transient single-slot status message shown to the
// user. Dismissal flips Visible without clearing message or severity so a
// UI layer can animate the exit.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Visible  bool     `json:"visible"`
}
