package tools

import "context"

// ToolHandler defines the tool handler signature.
type ToolHandler func(ctx context.Context, args string) (string, error)

type ToolKind string

const (
	ToolKindTool     ToolKind = "tool"
	ToolKindFunction ToolKind = "function"
)

// Tool is a function the model may call by name.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     ToolHandler
	Kind        ToolKind
}

type Option func(*Tool)

func New(name string, handler ToolHandler, opts ...Option) Tool {
	t := Tool{
		Name:    name,
		Handler: handler,
		Kind:    ToolKindFunction,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Static returns a handler that ignores its arguments and always answers text.
func Static(text string) ToolHandler {
	return func(context.Context, string) (string, error) {
		return text, nil
	}
}

func WithDescription(description string) Option {
	return func(t *Tool) {
		t.Description = description
	}
}

func WithParameters(parameters map[string]any) Option {
	return func(t *Tool) {
		t.Parameters = parameters
	}
}

func WithKind(kind ToolKind) Option {
	return func(t *Tool) {
		t.Kind = kind
	}
}

// HasParameters reports whether the schema declares at least one property.
func (t Tool) HasParameters() bool {
	if t.Parameters == nil {
		return false
	}
	props, ok := t.Parameters["properties"].(map[string]any)
	return ok && len(props) > 0
}

func ObjectSchema(properties map[string]any, required ...string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// EmptySchema is the parameter schema of a tool that takes no arguments.
func EmptySchema() map[string]any {
	return ObjectSchema(nil)
}

func StringProperty(description string) map[string]any {
	prop := map[string]any{
		"type": "string",
	}
	if description != "" {
		prop["description"] = description
	}
	return prop
}
