package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestMockModeSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		mock bool
	}{
		{"no provider no key", Config{}, true},
		{"provider without key", Config{Provider: "groq"}, true},
		{"key without provider", Config{APIKey: "sk-test"}, true},
		{"fully configured", Config{Provider: "groq", APIKey: "sk-test"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewClient(tc.cfg).Mock(); got != tc.mock {
				t.Fatalf("expected mock=%v got %v", tc.mock, got)
			}
		})
	}
}

func TestMockGeneration(t *testing.T) {
	client := NewMock()

	out, err := client.GenerateJSON(context.Background(), "", map[string]any{"scenario": "raise the price"})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	if out["classification"] != "pricing_change" {
		t.Fatalf("expected pricing_change got %v", out["classification"])
	}

	out, err = client.GenerateJSON(context.Background(), "", map[string]any{"scenario": "ship dark mode"})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	if out["classification"] != "feature_change" {
		t.Fatalf("expected feature_change got %v", out["classification"])
	}
}

// Mock output must be reproducible down to the last byte.
func TestMockDeterministic(t *testing.T) {
	client := NewMock()
	payload := map[string]any{"scenario": "raise the price"}

	first, err := client.GenerateJSON(context.Background(), "", payload)
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := client.GenerateJSON(context.Background(), "", payload)
		if err != nil {
			t.Fatalf("mock generate: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged", i)
		}
		againJSON, err := json.Marshal(again)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(firstJSON) != string(againJSON) {
			t.Fatalf("serialized form diverged:\n%s\n%s", firstJSON, againJSON)
		}
	}
}

func TestUnsupportedProvider(t *testing.T) {
	client := NewClient(Config{Provider: "acme", APIKey: "sk-test"})
	_, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError got %v", err)
	}
	if cfgErr.Provider != "acme" {
		t.Fatalf("expected provider acme got %q", cfgErr.Provider)
	}
}

func liveClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{Provider: "groq", APIKey: "sk-test", BaseURL: srv.URL})
}

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return body
}

func TestLiveModeSuccess(t *testing.T) {
	client := liveClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if rf, ok := req["response_format"].(map[string]any); !ok || rf["type"] != "json_object" {
			t.Errorf("missing json_object response format: %v", req["response_format"])
		}
		w.Write(completionBody(t, `{"impacts":{"risk":"churn"}}`))
	})

	out, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	impacts, ok := out["impacts"].(map[string]any)
	if !ok || impacts["risk"] != "churn" {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestLiveModeUpstreamError(t *testing.T) {
	client := liveClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError got %v", err)
	}
	if upErr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", upErr.Status)
	}
	if upErr.Body != `{"error":"rate limited"}` {
		t.Fatalf("body not preserved: %q", upErr.Body)
	}
}

// Prose-wrapped JSON must survive the first-brace/last-brace repair.
func TestLiveModeJSONRepair(t *testing.T) {
	client := liveClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, "Here is the analysis you asked for:\n{\"impacts\":{\"cost\":\"ops savings\"}}\nHope that helps!"))
	})

	out, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	impacts, ok := out["impacts"].(map[string]any)
	if !ok || impacts["cost"] != "ops savings" {
		t.Fatalf("repair failed: %v", out)
	}
}

func TestLiveModeInvalidJSON(t *testing.T) {
	client := liveClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, "no json here at all"))
	})

	_, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	var invErr *InvalidResponseError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvalidResponseError got %v", err)
	}
	if invErr.Raw != "no json here at all" {
		t.Fatalf("raw text not preserved: %q", invErr.Raw)
	}
}

func TestLiveModeNonObjectResult(t *testing.T) {
	client := liveClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, `[1,2,3]`))
	})

	_, err := client.GenerateJSON(context.Background(), "sys", map[string]any{"scenario": "x"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError got %v", err)
	}
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"clean object", `{"a":1}`, false},
		{"fenced prose", "```json\n{\"a\":1}\n```", false},
		{"broken tail", `{"a":1} trailing garbage`, false},
		{"no braces", "plain text", true},
		{"braces but invalid", "oops {not json} done", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeObject(tc.content)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
