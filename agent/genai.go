package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdusubhan/ask-agent/agent/tools"

	"google.golang.org/genai"
)

var _ Provider = (*GenaiProvider)(nil)

// GenaiProvider talks to the native Gemini API.
type GenaiProvider struct {
	Client *genai.Client
}

// NewGenaiProvider builds a Gemini API client. baseURL is only honored when it
// does not point at the OpenAI-compatible endpoint.
func NewGenaiProvider(ctx context.Context, apiKey string, baseURL string) (*GenaiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" && baseURL != DefaultBaseURL {
		cc.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenaiProvider{Client: client}, nil
}

func (p *GenaiProvider) Name() string { return ProviderGenai }

func (p *GenaiProvider) Chat(ctx context.Context, req ChatRequest) (Message, error) {
	cfg, contents, err := genaiConvRequest(req)
	if err != nil {
		return Message{}, err
	}
	resp, err := p.Client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return Message{}, err
	}
	return genaiConvResponse(resp)
}

func genaiConvRequest(req ChatRequest) (*genai.GenerateContentConfig, []*genai.Content, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	var (
		system   []*genai.Part
		contents []*genai.Content
		last     *genai.Content
	)
	for _, m := range req.Messages {
		var (
			role  string
			parts []*genai.Part
		)
		switch m.Role {
		case RoleSystem:
			system = append(system, genai.NewPartFromText(m.Content))
			continue
		case RoleUser:
			role = "user"
			parts = append(parts, genai.NewPartFromText(m.Content))
		case RoleAssistant:
			role = "model"
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					args = map[string]any{}
				}
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
		case RoleTool:
			role = "user"
			parts = append(parts, genai.NewPartFromFunctionResponse(m.Name, map[string]any{
				"output": m.Content,
			}))
		default:
			return nil, nil, fmt.Errorf("unexpected message role: %q", m.Role)
		}
		// Gemini expects alternating turns, so consecutive same-role messages merge.
		if last != nil && last.Role == role {
			last.Parts = append(last.Parts, parts...)
			continue
		}
		last = &genai.Content{Role: role, Parts: parts}
		contents = append(contents, last)
	}
	if len(contents) == 0 {
		return nil, nil, fmt.Errorf("no contents")
	}
	if len(system) > 0 {
		cfg.SystemInstruction = &genai.Content{Parts: system}
	}
	if len(req.Tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: genaiConvTools(req.Tools)}}
	}
	return cfg, contents, nil
}

func genaiConvTools(items []tools.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(items))
	for _, tool := range items {
		decl := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		// Gemini rejects object schemas without properties.
		if tool.HasParameters() {
			decl.ParametersJsonSchema = tool.Parameters
		}
		decls = append(decls, decl)
	}
	return decls
}

func genaiConvResponse(resp *genai.GenerateContentResponse) (Message, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return Message{}, fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return Message{}, ErrNoChoices
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return Message{}, fmt.Errorf("empty candidate, finish reason: %s", cand.FinishReason)
	}
	out := Message{Role: RoleAssistant}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		switch {
		case p.FunctionCall != nil:
			args := []byte("{}")
			if len(p.FunctionCall.Args) > 0 {
				b, err := json.Marshal(p.FunctionCall.Args)
				if err != nil {
					return Message{}, fmt.Errorf("encode function args: %w", err)
				}
				args = b
			}
			id := p.FunctionCall.ID
			if id == "" {
				id = p.FunctionCall.Name
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        id,
				Name:      p.FunctionCall.Name,
				Arguments: string(args),
			})
		case p.Thought:
		case p.Text != "":
			sb.WriteString(p.Text)
		}
	}
	out.Content = sb.String()
	return out, nil
}
