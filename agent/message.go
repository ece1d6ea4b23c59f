package agent

import (
	"context"

	"github.com/abdusubhan/ask-agent/agent/tools"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a function call requested by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Message struct {
	Role       string     `json:"role"`                   // system, user, assistant, tool
	Content    string     `json:"content"`                // message text
	Name       string     `json:"name,omitempty"`         // tool name (for tool role)
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool call ID (for tool role)
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // tool calls (for assistant role)
}

// ChatRequest is one round trip to the model.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Tools       []tools.Tool
	Temperature *float32
}

// Provider sends a conversation to a hosted model and returns its reply.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (Message, error)
}
