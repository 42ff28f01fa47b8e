package types

const (
	NotifyTypeNoSelection = "no_selection"
	NotifyTypeSuccess     = "upload_success"
	NotifyTypeSizeLimit   = "upload_size_limit"
	NotifyTypeFailed      = "upload_failed"
)

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // Notification type, e.g. "upload_success"
	Title   string         `json:"title,omitempty"`   // Notification title
	Message string         `json:"message,omitempty"` // Notification message/content
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}
