package domain

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// CancelledMarker is the assistant message appended when an in-flight chat
// request is cancelled by the user.
const CancelledMarker = "请求已取消"

// ChatMessage is one turn in a per-book conversation. BookID is recorded on
// every message so pinned messages remain attributable once collected across
// books.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Content   string   `json:"content"`
	Timestamp int64    `json:"timestamp"`
	BookID    string   `json:"bookId"`
}

// Cancelled reports whether the message is the cancellation marker.
func (m ChatMessage) Cancelled() bool {
	return m.Role == RoleAssistant && m.Content == CancelledMarker
}
