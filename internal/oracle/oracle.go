// Package oracle abstracts the language model used for question answering.
package oracle

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a chat exchange.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Oracle answers a chat exchange with a single completion.
type Oracle interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
