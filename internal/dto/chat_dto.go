package dto

// ChatReply is the envelope sent back down the websocket for each inbound
// message: exactly one reply per message, tagged ai or error.
type ChatReply struct {
	Type    string `json:"type"` // "ai" | "error"
	Content string `json:"content"`
}

const (
	ChatReplyTypeAI    = "ai"
	ChatReplyTypeError = "error"
)
