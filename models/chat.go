package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who authored a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Context bounds protecting the assistant gateway from unbounded payloads.
const (
	MaxCandidateProducts = 20
	MaxRecentTurns       = 6
	MaxChatMessageLength = 1000
)

// ChatMessage is a persisted conversation turn. Rows are append-only.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_chat_messages_user_created,priority:1" json:"-"`
	Role      ChatRole  `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_messages_user_created,priority:2" json:"createdAt"`
}

// ConversationTurn is one message of a user's conversation as read back from
// the store.
type ConversationTurn struct {
	ID        uuid.UUID `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AssistantContext is the bounded slice of catalog and conversation state
// offered to the model for a single reply. It is built per request and never
// stored.
type AssistantContext struct {
	CandidateProducts []ProductSummary
	RecentTurns       []ConversationTurn
	UserMessage       string
}

// PromptMessage is one entry of the message list sent to the gateway.
type PromptMessage struct {
	Role    ChatRole
	Content string
}

// Prompt is the rendered gateway input. Turns ends with the user's message.
type Prompt struct {
	Instructions string
	Turns        []PromptMessage
}

// History returns every turn except the trailing user message.
func (p Prompt) History() []PromptMessage {
	if len(p.Turns) == 0 {
		return nil
	}
	return p.Turns[:len(p.Turns)-1]
}

// UserMessage returns the trailing user message.
func (p Prompt) UserMessage() string {
	if len(p.Turns) == 0 {
		return ""
	}
	return p.Turns[len(p.Turns)-1].Content
}

// ReplySource records whether a reply came from the model or the canned text.
type ReplySource string

const (
	ReplySourceModel    ReplySource = "model"
	ReplySourceFallback ReplySource = "fallback"
)

// AssistantReply is the finalized answer shown to the user.
type AssistantReply struct {
	Text   string
	Source ReplySource
}

// ChatRequest is the body of POST /chat/message. The max tag must equal
// MaxChatMessageLength.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// ChatResponse is the body returned by POST /chat/message.
type ChatResponse struct {
	Reply string `json:"reply"`
}
