package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abdusubhan/ask-agent/agent/tools"
	"github.com/abdusubhan/ask-agent/metrics"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultName         string = "Assistant"
	DefaultDescription  string = "Answers questions about Abdu Subhan: contact details, work, location, bio, skills, experience, education and projects"
	DefaultSystemPrompt string = "You are a helpful assistant answering any questions about Abdu Subhan or subhan both are same."
	DefaultMaxTurns     int    = 10
	DefaultToolWorkers  int    = 8
)

var ErrMaxTurns = errors.New("agent loop limit exceeded")

// Agent binds a persona, a tool set and a model provider. Configure it with
// the setters and RegisterTool before the first Invoke; after that it is
// read-only and safe for concurrent use.
type Agent struct {
	Name          string
	Description   string
	provider      Provider
	model         string
	tools         map[string]tools.Tool
	toolList      []tools.Tool
	promptWrapper PromptWrapper
	systemPrompt  string
	MaxTurns      int
	Temperature   *float32
	pool          *ants.Pool
	log           *logrus.Entry
}

func NewAgent(provider Provider, model string) (*Agent, error) {
	if provider == nil {
		return nil, errors.New("provider is required")
	}
	pool, err := ants.NewPool(DefaultToolWorkers)
	if err != nil {
		return nil, fmt.Errorf("create tool pool: %w", err)
	}
	return &Agent{
		Name:          DefaultName,
		Description:   DefaultDescription,
		provider:      provider,
		model:         model,
		tools:         map[string]tools.Tool{},
		promptWrapper: DefaultPromptWrapper(),
		systemPrompt:  DefaultSystemPrompt,
		MaxTurns:      DefaultMaxTurns,
		pool:          pool,
		log:           logrus.WithField("component", "agent"),
	}, nil
}

func (a *Agent) SetSystemPrompt(systemPrompt string) {
	a.systemPrompt = systemPrompt
}

func (a *Agent) SetLogger(log *logrus.Entry) {
	if log != nil {
		a.log = log
	}
}

// SetToolWorkers resizes the pool that runs tool calls.
func (a *Agent) SetToolWorkers(n int) error {
	if n <= 0 {
		return fmt.Errorf("tool workers must be positive, got %d", n)
	}
	a.pool.Tune(n)
	return nil
}

func (a *Agent) AddSystemPrompt(prompt string) {
	a.promptWrapper.AddSystemPrompt(prompt)
}

func (a *Agent) Model() string { return a.model }

func (a *Agent) Provider() Provider { return a.provider }

// ListTools returns the registered tools in registration order.
func (a *Agent) ListTools() []tools.Tool {
	items := make([]tools.Tool, len(a.toolList))
	copy(items, a.toolList)
	return items
}

// RegisterTool adds tool, replacing any earlier tool with the same name.
func (a *Agent) RegisterTool(tool tools.Tool) {
	if tool.Name == "" || tool.Handler == nil {
		return
	}
	if tool.Kind == "" {
		tool.Kind = tools.ToolKindFunction
	}
	if _, exists := a.tools[tool.Name]; exists {
		for i := range a.toolList {
			if a.toolList[i].Name == tool.Name {
				a.toolList[i] = tool
			}
		}
	} else {
		a.toolList = append(a.toolList, tool)
	}
	a.tools[tool.Name] = tool
}

func (a *Agent) RegisterToolFunc(name string, handler tools.ToolHandler, opts ...tools.Option) {
	a.RegisterTool(tools.New(name, handler, opts...))
}

// Invoke sends userQuery to the model and runs requested tools until the
// model answers with plain text or MaxTurns round trips are used up.
func (a *Agent) Invoke(ctx context.Context, userQuery string) (string, error) {
	wrapper := a.promptWrapper.Clone()
	wrapper.AddSystemPrompt(a.systemPrompt)
	messages := wrapper.WrapMessages(a.Name, a.Description)
	messages = append(messages, Message{Role: RoleUser, Content: userQuery})

	for turn := 1; turn <= a.MaxTurns; turn++ {
		reply, err := a.provider.Chat(ctx, ChatRequest{
			Model:       a.model,
			Messages:    messages,
			Tools:       a.toolList,
			Temperature: a.Temperature,
		})
		if err != nil {
			metrics.IncModelCall(a.provider.Name(), "error")
			return "", fmt.Errorf("llm error: %w", err)
		}
		metrics.IncModelCall(a.provider.Name(), "ok")
		messages = append(messages, reply)
		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}
		messages = append(messages, a.runTools(ctx, reply.ToolCalls)...)
	}
	return "", ErrMaxTurns
}

// runTools executes calls on the worker pool. Results keep the call order.
func (a *Agent) runTools(ctx context.Context, calls []ToolCall) []Message {
	results := make([]Message, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		results[i] = Message{Role: RoleTool, Name: call.Name, ToolCallID: call.ID}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i].Content = a.callTool(ctx, call)
		}
		if err := a.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	return results
}

func (a *Agent) callTool(ctx context.Context, call ToolCall) (result string) {
	tool, exists := a.tools[call.Name]
	if !exists {
		a.log.WithField("tool", call.Name).Warn("tool not found")
		metrics.IncToolCall(call.Name, "not_found")
		return fmt.Sprintf("Error: tool %q not found", call.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			a.log.WithField("tool", call.Name).Errorf("tool panicked: %v", r)
			metrics.IncToolCall(call.Name, "error")
			result = fmt.Sprintf("Error executing tool: %v", r)
		}
	}()
	a.log.WithFields(logrus.Fields{"tool": call.Name, "args": call.Arguments}).Debug("agent calling tool")
	out, err := tool.Handler(ctx, call.Arguments)
	if err != nil {
		metrics.IncToolCall(call.Name, "error")
		return fmt.Sprintf("Error executing tool: %v", err)
	}
	metrics.IncToolCall(call.Name, "ok")
	return out
}

// Close releases the tool worker pool.
func (a *Agent) Close() {
	if a.pool != nil {
		a.pool.Release()
	}
}
