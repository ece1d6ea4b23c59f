package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeInvoker struct {
	calls  int32
	prompt atomic.Value
	fn     func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.prompt.Store(prompt)
	return f.fn(ctx, prompt)
}

func answer(text string) *fakeInvoker {
	return &fakeInvoker{fn: func(context.Context, string) (string, error) { return text, nil }}
}

func failing(err error) *fakeInvoker {
	return &fakeInvoker{fn: func(context.Context, string) (string, error) { return "", err }}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("body is not JSON: %v (%q)", err, rec.Body.String())
	}
	return out
}

func TestAskSuccess(t *testing.T) {
	inv := answer("You can reach him at abdusubhan6678@gmail.com")
	r := SetupRouter(NewHandler(inv))

	rec := do(t, r, http.MethodPost, "/ask", `{"prompt": "How can I contact Abdu Subhan?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode(t, rec)
	resp, ok := body["response"].(string)
	if !ok {
		t.Fatalf("response is not a string: %v", body)
	}
	if !strings.Contains(resp, "abdusubhan6678@gmail.com") {
		t.Errorf("response = %q", resp)
	}
	if len(body) != 1 {
		t.Errorf("unexpected keys in %v", body)
	}
	if got := inv.prompt.Load(); got != "How can I contact Abdu Subhan?" {
		t.Errorf("invoker got prompt %v", got)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestAskEmptyPromptIsValid(t *testing.T) {
	inv := answer("Ask me anything about Abdu Subhan.")
	r := SetupRouter(NewHandler(inv))

	rec := do(t, r, http.MethodPost, "/ask", `{"prompt": ""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if inv.prompt.Load() != "" {
		t.Errorf("invoker got %v, want empty prompt", inv.prompt.Load())
	}
}

func TestAskValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
		wantLoc  []any
	}{
		{"empty body", ``, "missing", []any{"body"}},
		{"empty object", `{}`, "missing", []any{"body", "prompt"}},
		{"other field", `{"question": "hi"}`, "missing", []any{"body", "prompt"}},
		{"null prompt", `{"prompt": null}`, "missing", []any{"body", "prompt"}},
		{"number prompt", `{"prompt": 42}`, "string_type", []any{"body", "prompt"}},
		{"bool prompt", `{"prompt": true}`, "string_type", []any{"body", "prompt"}},
		{"array prompt", `{"prompt": ["a"]}`, "string_type", []any{"body", "prompt"}},
		{"object prompt", `{"prompt": {"text": "a"}}`, "string_type", []any{"body", "prompt"}},
		{"top-level array", `["hi"]`, "model_attributes_type", []any{"body"}},
		{"malformed", `{"prompt": "hi"`, "json_invalid", []any{"body"}},
		{"garbage", `prompt=hi`, "json_invalid", []any{"body"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := answer("never")
			r := SetupRouter(NewHandler(inv))

			rec := do(t, r, http.MethodPost, "/ask", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422; body %s", rec.Code, rec.Body)
			}
			if n := atomic.LoadInt32(&inv.calls); n != 0 {
				t.Fatalf("invoker called %d times on invalid input", n)
			}
			var body ValidationError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Detail) != 1 {
				t.Fatalf("detail = %+v", body.Detail)
			}
			d := body.Detail[0]
			if d.Type != tt.wantType {
				t.Errorf("type = %q, want %q", d.Type, tt.wantType)
			}
			if fmt.Sprint(d.Loc) != fmt.Sprint(tt.wantLoc) {
				t.Errorf("loc = %v, want %v", d.Loc, tt.wantLoc)
			}
			if d.Msg == "" {
				t.Error("empty msg")
			}
		})
	}
}

func TestAskInvocationError(t *testing.T) {
	inv := failing(fmt.Errorf("llm error: %w", context.DeadlineExceeded))
	r := SetupRouter(NewHandler(inv))

	rec := do(t, r, http.MethodPost, "/ask", `{"prompt": "hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "llm error: context deadline exceeded" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["response"]; ok {
		t.Error("error body must not carry a response")
	}
}

func TestAskTimeout(t *testing.T) {
	inv := &fakeInvoker{fn: func(ctx context.Context, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(2 * time.Second):
			return "too late", nil
		}
	}}
	r := SetupRouter(NewHandler(inv, WithTimeout(20*time.Millisecond)))

	rec := do(t, r, http.MethodPost, "/ask", `{"prompt": "hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decode(t, rec)["error"]; got != context.DeadlineExceeded.Error() {
		t.Errorf("error = %v", got)
	}
}

func TestAskPanicIsContained(t *testing.T) {
	inv := &fakeInvoker{fn: func(context.Context, string) (string, error) {
		panic("remote exploded")
	}}
	r := SetupRouter(NewHandler(inv))

	rec := do(t, r, http.MethodPost, "/ask", `{"prompt": "hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decode(t, rec)["error"]; got != "remote exploded" {
		t.Errorf("error = %v", got)
	}

	// the router keeps serving after a panic
	inv.fn = func(context.Context, string) (string, error) { return "ok", nil }
	if rec := do(t, r, http.MethodPost, "/ask", `{"prompt": "again"}`); rec.Code != http.StatusOK {
		t.Errorf("follow-up status = %d", rec.Code)
	}
}

func TestRoutes(t *testing.T) {
	r := SetupRouter(NewHandler(answer("x")))

	if rec := do(t, r, http.MethodGet, "/ask", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /ask = %d, want 405", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/health", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /health = %d, want 404", rec.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	r := SetupRouter(NewHandler(answer("x")))
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"prompt":"hi"}`))
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestNewValidationErrorFallback(t *testing.T) {
	v := NewValidationError(errors.New("strange"))
	if len(v.Detail) != 1 || v.Detail[0].Type != "value_error" || v.Detail[0].Msg != "strange" {
		t.Errorf("fallback = %+v", v)
	}
}
