package agent

import (
	"testing"

	"github.com/abdusubhan/ask-agent/agent/tools"
	"github.com/abdusubhan/ask-agent/agent/tools/profile"

	"google.golang.org/genai"
)

func TestGenaiConvRequest(t *testing.T) {
	temp := float32(0.3)
	req := ChatRequest{
		Model: DefaultModel,
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "How can I contact him?"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{
				{ID: "get_contact_info", Name: "get_contact_info", Arguments: "{}"},
				{ID: "get_location", Name: "get_location", Arguments: ""},
			}},
			{Role: RoleTool, Name: "get_contact_info", ToolCallID: "get_contact_info", Content: profile.ContactInfo()},
			{Role: RoleTool, Name: "get_location", ToolCallID: "get_location", Content: profile.Location()},
		},
		Tools:       profile.Tools(),
		Temperature: &temp,
	}

	cfg, contents, err := genaiConvRequest(req)
	if err != nil {
		t.Fatalf("genaiConvRequest: %v", err)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "persona" {
		t.Errorf("system instruction = %+v", cfg.SystemInstruction)
	}
	if cfg.Temperature == nil || *cfg.Temperature != temp {
		t.Errorf("temperature = %v", cfg.Temperature)
	}
	if len(cfg.Tools) != 1 || len(cfg.Tools[0].FunctionDeclarations) != 8 {
		t.Fatalf("tools = %+v", cfg.Tools)
	}
	for _, d := range cfg.Tools[0].FunctionDeclarations {
		if d.ParametersJsonSchema != nil {
			t.Errorf("%s: parameterless tool sent a schema", d.Name)
		}
	}

	// user, model (two calls), user (two responses merged)
	if len(contents) != 3 {
		t.Fatalf("got %d contents, want 3", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" || contents[2].Role != "user" {
		t.Errorf("roles = %s/%s/%s", contents[0].Role, contents[1].Role, contents[2].Role)
	}
	if n := len(contents[1].Parts); n != 2 || contents[1].Parts[0].FunctionCall == nil {
		t.Fatalf("model turn parts = %+v", contents[1].Parts)
	}
	if len(contents[2].Parts) != 2 {
		t.Fatalf("function responses not merged: %+v", contents[2].Parts)
	}
	fr := contents[2].Parts[0].FunctionResponse
	if fr == nil || fr.Name != "get_contact_info" || fr.Response["output"] != profile.ContactInfo() {
		t.Errorf("function response = %+v", fr)
	}
}

func TestGenaiConvRequestWithSchema(t *testing.T) {
	schema := tools.ObjectSchema(map[string]any{"q": tools.StringProperty("query")}, "q")
	req := ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Tools:    []tools.Tool{tools.New("search", tools.Static(""), tools.WithParameters(schema))},
	}
	cfg, _, err := genaiConvRequest(req)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tools[0].FunctionDeclarations[0].ParametersJsonSchema == nil {
		t.Error("schema with properties was dropped")
	}
}

func TestGenaiConvRequestErrors(t *testing.T) {
	if _, _, err := genaiConvRequest(ChatRequest{Messages: []Message{{Role: RoleSystem, Content: "only system"}}}); err == nil {
		t.Error("request without contents accepted")
	}
	if _, _, err := genaiConvRequest(ChatRequest{Messages: []Message{{Role: "narrator", Content: "?"}}}); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestGenaiConvResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: "model",
				Parts: []*genai.Part{
					{Text: "Let me check. "},
					{FunctionCall: &genai.FunctionCall{Name: "get_bio"}},
					{FunctionCall: &genai.FunctionCall{ID: "c2", Name: "get_skill", Args: map[string]any{"verbose": true}}},
				},
			},
		}},
	}
	msg, err := genaiConvResponse(resp)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Role != RoleAssistant || msg.Content != "Let me check. " {
		t.Errorf("message = %+v", msg)
	}
	if len(msg.ToolCalls) != 2 {
		t.Fatalf("tool calls = %+v", msg.ToolCalls)
	}
	if tc := msg.ToolCalls[0]; tc.ID != "get_bio" || tc.Arguments != "{}" {
		t.Errorf("first call = %+v", tc)
	}
	if tc := msg.ToolCalls[1]; tc.ID != "c2" || tc.Arguments != `{"verbose":true}` {
		t.Errorf("second call = %+v", tc)
	}
}

func TestGenaiConvResponseEmpty(t *testing.T) {
	if _, err := genaiConvResponse(&genai.GenerateContentResponse{}); err == nil {
		t.Error("empty response accepted")
	}
	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	}
	if _, err := genaiConvResponse(blocked); err == nil {
		t.Error("blocked prompt accepted")
	}
}
