package agent

import (
	"fmt"
	"slices"
	"strings"
)

// PromptWrapper stores prompt segments for system and user messages.
type PromptWrapper struct {
	systemPrompts []string
	userPrompts   []string
}

func DefaultPromptWrapper() PromptWrapper {
	return PromptWrapper{}
}

// Clone returns a copy that shares no backing arrays with w.
func (w PromptWrapper) Clone() PromptWrapper {
	return PromptWrapper{
		systemPrompts: slices.Clone(w.systemPrompts),
		userPrompts:   slices.Clone(w.userPrompts),
	}
}

// AddSystemPrompt appends an extra system-role prompt segment.
func (w *PromptWrapper) AddSystemPrompt(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	w.systemPrompts = append(w.systemPrompts, prompt)
}

// AddUserPrompt appends an extra user-role prompt segment.
func (w *PromptWrapper) AddUserPrompt(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	w.userPrompts = append(w.userPrompts, prompt)
}

// WrapMessages builds chat messages from the stored prompt segments.
func (w *PromptWrapper) WrapMessages(name, desc string) []Message {
	systemParts := make([]string, 0, 4)
	if name != "" || desc != "" {
		systemParts = append(systemParts, fmt.Sprintf("Agent Name: %s\nAgent Description: %s", name, desc))
	}
	systemParts = append(systemParts, w.systemPrompts...)

	systemMessage := strings.TrimSpace(strings.Join(systemParts, "\n\n"))
	userMessage := strings.TrimSpace(strings.Join(w.userPrompts, "\n\n"))

	messages := make([]Message, 0, 2)
	if systemMessage != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemMessage})
	}
	if userMessage != "" {
		messages = append(messages, Message{Role: RoleUser, Content: userMessage})
	}
	return messages
}
