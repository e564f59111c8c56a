package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubInsightSource struct{}

func (stubInsightSource) ScoreString() string { return "62.5" }

func (stubInsightSource) Dimensions() []DimensionPerformance {
	return []DimensionPerformance{
		{Dimension: "ENVIRONMENTAL", Total: 4, Responded: 2, Approved: 1, Gaps: 1, MeanScore: 2.5},
	}
}

func (stubInsightSource) GapCount() int { return 3 }

type stubHTTPClient struct {
	lastReq *http.Request
	resp    *http.Response
	err     error
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func chatResponse(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestGenerateWithoutKeyFallsBack(t *testing.T) {
	client := &stubHTTPClient{}
	svc := NewInsightService(stubInsightSource{}, client, InsightConfig{})

	if got := svc.Generate(); got != insightMissingKey {
		t.Fatalf("insight = %q, want missing-key fallback", got)
	}
	if client.lastReq != nil {
		t.Fatal("no request should leave the process without a key")
	}
}

func TestGenerateConnectionFailures(t *testing.T) {
	cases := []struct {
		name   string
		client *stubHTTPClient
	}{
		{"transport error", &stubHTTPClient{err: errors.New("dial tcp: timeout")}},
		{"http error status", &stubHTTPClient{resp: chatResponse(429, `{"error":"rate limited"}`)}},
		{"malformed body", &stubHTTPClient{resp: chatResponse(200, `{"choices":[`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewInsightService(stubInsightSource{}, tc.client, InsightConfig{Key: "sk-test"})
			if got := svc.Generate(); got != insightConnError {
				t.Fatalf("insight = %q, want connection fallback", got)
			}
		})
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	for _, body := range []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{"content":"   "}}]}`,
	} {
		client := &stubHTTPClient{resp: chatResponse(200, body)}
		svc := NewInsightService(stubInsightSource{}, client, InsightConfig{Key: "sk-test"})
		if got := svc.Generate(); got != insightEmpty {
			t.Fatalf("insight for %s = %q, want empty fallback", body, got)
		}
	}
}

func TestGenerateSuccessPassesThrough(t *testing.T) {
	client := &stubHTTPClient{resp: chatResponse(200, `{"choices":[{"message":{"content":"  A dimensão ambiental requer atenção.  "}}]}`)}
	svc := NewInsightService(stubInsightSource{}, client, InsightConfig{Key: "sk-test", Base: "https://llm.interno.example", Model: "gpt-4o"})

	if got := svc.Generate(); got != "A dimensão ambiental requer atenção." {
		t.Fatalf("insight = %q", got)
	}

	req := client.lastReq
	if req.URL.String() != "https://llm.interno.example/v1/chat/completions" {
		t.Fatalf("url = %s", req.URL)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Fatalf("auth = %q", got)
	}
	var payload struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if payload.Model != "gpt-4o" {
		t.Fatalf("model = %s", payload.Model)
	}
	if len(payload.Messages) != 2 {
		t.Fatalf("messages = %d", len(payload.Messages))
	}
	user := payload.Messages[1].Content
	if !strings.Contains(user, "Índice GRI atual: 62.5%") || !strings.Contains(user, "Gaps abertos: 3") {
		t.Fatalf("context = %q", user)
	}
}

func TestNormalizeAIEndpoint(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "https://api.openai.com/v1/chat/completions"},
		{"https://api.openai.com", "https://api.openai.com/v1/chat/completions"},
		{"https://llm.example/v1", "https://llm.example/v1/chat/completions"},
		{"https://llm.example/v1/chat/completions", "https://llm.example/v1/chat/completions"},
		{"https://llm.example/", "https://llm.example/v1/chat/completions"},
	}
	for _, tc := range cases {
		if got := normalizeAIEndpoint(tc.in); got != tc.want {
			t.Errorf("normalizeAIEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
