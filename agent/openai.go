package agent

import (
	"context"
	"errors"

	"github.com/abdusubhan/ask-agent/agent/tools"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrNoChoices = errors.New("model returned no choices")

var _ Provider = (*OpenAIProvider)(nil)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint,
// Gemini's included.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider builds a client for apiKey and baseURL. SDK retries are
// disabled: a failed round trip is reported to the caller as is.
func NewOpenAIProvider(apiKey string, baseURL string, opts ...option.RequestOption) *OpenAIProvider {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	options = append(options, opts...)
	return &OpenAIProvider{client: openai.NewClient(options...)}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: toOpenAIMessages(req.Messages),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}
	if len(req.Tools) > 0 {
		params.Tools = toOpenAITools(req.Tools)
	}
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Message{}, err
	}
	if len(resp.Choices) == 0 {
		return Message{}, ErrNoChoices
	}
	msg := resp.Choices[0].Message
	out := Message{Role: RoleAssistant, Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case RoleAssistant:
			out = append(out, toOpenAIAssistant(m))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func toOpenAIAssistant(m Message) openai.ChatCompletionMessageParamUnion {
	if len(m.ToolCalls) == 0 {
		return openai.AssistantMessage(m.Content)
	}
	asst := openai.ChatCompletionAssistantMessageParam{}
	if m.Content != "" {
		asst.Content.OfString = openai.String(m.Content)
	}
	for _, tc := range m.ToolCalls {
		asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &asst}
}

func toOpenAITools(items []tools.Tool) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(items))
	for _, tool := range items {
		functionDef := openai.FunctionDefinitionParam{
			Name: tool.Name,
		}
		if tool.Description != "" {
			functionDef.Description = openai.String(tool.Description)
		}
		if tool.Parameters != nil {
			functionDef.Parameters = openai.FunctionParameters(tool.Parameters)
		}
		out = append(out, openai.ChatCompletionToolParam{
			Function: functionDef,
		})
	}
	return out
}
