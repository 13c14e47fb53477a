// Package backend is the shopping assistant's facade over the AI backend.
// It owns the request/response contract: prompting, payload validation and
// normalization into model entities.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopwise-ai/assistant-core/internal/llm"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/metrics"
)

const recommendationInstructions = `You are a product recommendation engine for an online shopping assistant.
Respond with a single JSON object and nothing else, using exactly this shape:
{"recommendations":[{"id":"string","name":"string","price":0.0,"rating":0.0,"pros":["string"],"cons":["string"],"inStock":true}],"followUpQuestion":"string"}
Recommend up to 5 products for the user's request. Ratings are between 0 and 5.
The followUpQuestion is one short question that helps narrow the search.`

const chatPersona = `You are ShopWise, a friendly AI shopping assistant. Help the user find and compare products. Keep replies short and conversational.`

// Backend talks to the AI service through an LLM provider client.
type Backend struct {
	client        llm.Client
	historyWindow int
	timeout       time.Duration
}

// New creates a Backend on top of the given LLM client. Every model call is
// bounded by timeout.
func New(client llm.Client, historyWindow int, timeout time.Duration) *Backend {
	if historyWindow <= 0 {
		historyWindow = 50
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Backend{
		client:        client,
		historyWindow: historyWindow,
		timeout:       timeout,
	}
}

// recommendationPayload mirrors the wire shape of a recommendation response.
// Pointer fields distinguish absent keys from zero values during validation.
type recommendationPayload struct {
	Recommendations  *[]productPayload `json:"recommendations"`
	FollowUpQuestion *string           `json:"followUpQuestion"`
}

type productPayload struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Rating  float64         `json:"rating"`
	Pros    []string        `json:"pros"`
	Cons    []string        `json:"cons"`
	InStock bool            `json:"inStock"`
}

// GetProductRecommendations asks the backend for structured recommendations.
// The query must already be trimmed and non-empty; transport failures surface
// as *BackendError and shape failures as *InvalidResponseError.
func (b *Backend) GetProductRecommendations(ctx context.Context, query string) (*model.RecommendationSet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	resp, err := b.client.Complete(callCtx, &llm.CompletionRequest{
		Messages: []llm.ChatMessage{
			{
				Role:    string(model.RoleUser),
				Content: recommendationInstructions + "\n\nUser request: " + query,
			},
		},
		MaxTokens: 2048,
	})
	if err != nil {
		metrics.RecordLLMCall("recommendations", "error", "", time.Since(start).Seconds(), 0, 0)
		return nil, &BackendError{Op: "getProductRecommendations", Err: err}
	}
	metrics.RecordLLMCall("recommendations", "success", resp.Model, time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	set, err := parseRecommendations(resp.Content)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// GetAIResponse sends one chat turn plus trailing history and returns the
// assistant reply text.
func (b *Backend) GetAIResponse(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	messages := b.chatMessages(history, message)

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	resp, err := b.client.Complete(callCtx, &llm.CompletionRequest{
		Messages:  messages,
		MaxTokens: 1024,
	})
	if err != nil {
		metrics.RecordLLMCall("chat", "error", "", time.Since(start).Seconds(), 0, 0)
		return "", &BackendError{Op: "getAIResponse", Err: err}
	}
	metrics.RecordLLMCall("chat", "success", resp.Model, time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", &InvalidResponseError{Reason: "empty assistant reply"}
	}
	return reply, nil
}

// chatMessages builds the provider message list: trailing history window,
// leading assistant turns dropped (providers require a user turn first), and
// the persona prepended to the first user turn.
func (b *Backend) chatMessages(history []model.ChatMessage, message string) []llm.ChatMessage {
	if len(history) > b.historyWindow {
		history = history[len(history)-b.historyWindow:]
	}
	for len(history) > 0 && history[0].Role != model.RoleUser {
		history = history[1:]
	}

	messages := make([]llm.ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, llm.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, llm.ChatMessage{
		Role:    string(model.RoleUser),
		Content: message,
	})
	messages[0].Content = chatPersona + "\n\n" + messages[0].Content
	return messages
}

// parseRecommendations validates and normalizes a raw model response into a
// RecommendationSet.
func parseRecommendations(raw string) (*model.RecommendationSet, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload recommendationPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, &InvalidResponseError{Reason: "payload is not valid JSON", Err: err}
	}
	if payload.Recommendations == nil {
		return nil, &InvalidResponseError{Reason: "missing recommendations"}
	}
	if payload.FollowUpQuestion == nil {
		return nil, &InvalidResponseError{Reason: "missing followUpQuestion"}
	}

	seen := make(map[string]bool, len(*payload.Recommendations))
	products := make([]model.Product, 0, len(*payload.Recommendations))
	for i, p := range *payload.Recommendations {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		if seen[p.ID] {
			continue
		}
		if p.Price.IsNegative() {
			return nil, &InvalidResponseError{
				Reason: fmt.Sprintf("recommendation %d has negative price", i),
			}
		}
		seen[p.ID] = true
		products = append(products, model.Product{
			ID:      p.ID,
			Name:    p.Name,
			Price:   p.Price,
			Rating:  clampRating(p.Rating),
			Pros:    nonNil(p.Pros),
			Cons:    nonNil(p.Cons),
			InStock: p.InStock,
		})
	}

	return &model.RecommendationSet{
		Recommendations:  products,
		FollowUpQuestion: *payload.FollowUpQuestion,
	}, nil
}

// extractJSON strips markdown code fences and surrounding prose, returning
// the outermost JSON object.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", &InvalidResponseError{Reason: "no JSON object in payload"}
	}
	return s[start : end+1], nil
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
