package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Static fallback texts shown when the external AI provider is unavailable.
// The dashboard renders whatever string comes back, so the degraded path
// returns friendly Portuguese copy instead of an error.
const (
	insightMissingKey = "API Key não configurada. Configure a variável de ambiente AI_API_KEY para receber insights de IA."
	insightConnError  = "Erro de conexão com o serviço de IA."
	insightEmpty      = "Não foi possível gerar insights no momento."
)

// HTTPClient lets tests stub the outbound provider call.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// InsightConfig carries the provider credentials. An empty Key disables the
// external call entirely.
type InsightConfig struct {
	Key   string
	Base  string
	Model string
}

// InsightSource summarizes the reporting state fed into the prompt.
type InsightSource interface {
	ScoreString() string
	Dimensions() []DimensionPerformance
	GapCount() int
}

type InsightService struct {
	source InsightSource
	client HTTPClient
	cfg    InsightConfig
}

func NewInsightService(source InsightSource, client HTTPClient, cfg InsightConfig) *InsightService {
	if client == nil {
		client = http.DefaultClient
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &InsightService{source: source, client: client, cfg: cfg}
}

// Generate asks the provider for a short analysis of the current ESG posture.
// It never returns an error: every failure mode degrades to a static string
// so the dashboard always has something to show.
func (s *InsightService) Generate() string {
	if strings.TrimSpace(s.cfg.Key) == "" {
		return insightMissingKey
	}
	payload := map[string]any{
		"model":       s.cfg.Model,
		"temperature": 0.4,
		"messages": []map[string]string{
			{"role": "system", "content": insightSystemPrompt()},
			{"role": "user", "content": s.buildContext()},
		},
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return insightConnError
	}
	req, err := http.NewRequest(http.MethodPost, normalizeAIEndpoint(s.cfg.Base), bytes.NewReader(pb))
	if err != nil {
		return insightConnError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Key)
	resp, err := s.client.Do(req)
	if err != nil {
		return insightConnError
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return insightConnError
	}
	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cc); err != nil {
		return insightConnError
	}
	if len(cc.Choices) == 0 {
		return insightEmpty
	}
	text := strings.TrimSpace(cc.Choices[0].Message.Content)
	if text == "" {
		return insightEmpty
	}
	return text
}

func (s *InsightService) buildContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Índice GRI atual: %s%%\n", s.source.ScoreString())
	fmt.Fprintf(&b, "Gaps abertos: %d\n", s.source.GapCount())
	b.WriteString("Desempenho por dimensão:\n")
	for _, d := range s.source.Dimensions() {
		fmt.Fprintf(&b, "- %s: %d/%d respondidos, %d aprovados, %d gaps, nota média %.1f\n",
			d.Dimension, d.Responded, d.Total, d.Approved, d.Gaps, d.MeanScore)
	}
	return b.String()
}

func insightSystemPrompt() string {
	return "Você é um analista ESG sênior. Com base nos dados de desempenho a seguir, escreva um parágrafo curto em português com insights acionáveis: pontos fortes, riscos e a dimensão que merece atenção prioritária. Responda apenas com o texto do parágrafo."
}

func normalizeAIEndpoint(base string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(base), "/")
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}
	switch {
	case strings.HasSuffix(endpoint, "/chat/completions"):
		return endpoint
	case strings.HasSuffix(endpoint, "/v1"):
		return endpoint + "/chat/completions"
	default:
		return endpoint + "/v1/chat/completions"
	}
}
