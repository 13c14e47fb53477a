package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwise-ai/assistant-core/internal/llm"
	"github.com/shopwise-ai/assistant-core/internal/model"
)

// mockLLM implements llm.Client for testing.
type mockLLM struct {
	content   string
	err       error
	reqs      []*llm.CompletionRequest
	deadlines []time.Time
}

func (m *mockLLM) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.reqs = append(m.reqs, req)
	if deadline, ok := ctx.Deadline(); ok {
		m.deadlines = append(m.deadlines, deadline)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.content, Model: "mock"}, nil
}

func (m *mockLLM) Name() string     { return "mock" }
func (m *mockLLM) Models() []string { return nil }

const validPayload = `{"recommendations":[{"id":"p1","name":"EarBud X","price":49.99,"rating":4.5,"pros":["Great battery"],"cons":["Pricey"],"inStock":true}],"followUpQuestion":"Wired or wireless?"}`

func TestGetProductRecommendationsParsesPayload(t *testing.T) {
	client := &mockLLM{content: validPayload}
	b := New(client, 50, 0)

	set, err := b.GetProductRecommendations(context.Background(), "wireless earbuds")

	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	p := set.Recommendations[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "EarBud X", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("49.99")))
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, []string{"Great battery"}, p.Pros)
	assert.Equal(t, []string{"Pricey"}, p.Cons)
	assert.True(t, p.InStock)
	assert.Equal(t, "Wired or wireless?", set.FollowUpQuestion)
}

func TestGetProductRecommendationsStripsCodeFences(t *testing.T) {
	client := &mockLLM{content: "Here you go:\n```json\n" + validPayload + "\n```"}
	b := New(client, 50, 0)

	set, err := b.GetProductRecommendations(context.Background(), "earbuds")

	require.NoError(t, err)
	assert.Len(t, set.Recommendations, 1)
}

func TestGetProductRecommendationsEmptyQueryNeverCallsModel(t *testing.T) {
	client := &mockLLM{content: validPayload}
	b := New(client, 50, 0)

	_, err := b.GetProductRecommendations(context.Background(), "  \n ")

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, client.reqs)
}

func TestGetProductRecommendationsTransportFailure(t *testing.T) {
	client := &mockLLM{err: errors.New("connection refused")}
	b := New(client, 50, 0)

	_, err := b.GetProductRecommendations(context.Background(), "earbuds")

	require.Error(t, err)
	assert.True(t, IsBackend(err))
	assert.False(t, IsInvalidResponse(err))
}

func TestGetProductRecommendationsShapeValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not JSON", "sorry, I can't do that"},
		{"truncated JSON", `{"recommendations":[{"id":"p1"`},
		{"missing recommendations", `{"followUpQuestion":"hm?"}`},
		{"missing followUpQuestion", `{"recommendations":[]}`},
		{"negative price", `{"recommendations":[{"id":"p1","name":"X","price":-1,"rating":3,"pros":[],"cons":[],"inStock":true}],"followUpQuestion":"?"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(&mockLLM{content: tc.payload}, 50, 0)
			_, err := b.GetProductRecommendations(context.Background(), "earbuds")
			require.Error(t, err)
			assert.True(t, IsInvalidResponse(err), "want InvalidResponse, got %v", err)
		})
	}
}

func TestGetProductRecommendationsNormalization(t *testing.T) {
	payload := `{"recommendations":[
		{"id":"p1","name":"A","price":1,"rating":7.2,"pros":null,"cons":null,"inStock":true},
		{"id":"p1","name":"dup","price":1,"rating":3,"pros":[],"cons":[],"inStock":true},
		{"id":"","name":"no id","price":1,"rating":3,"pros":[],"cons":[],"inStock":true},
		{"id":"p2","name":"B","price":2,"rating":-1,"pros":["x"],"cons":["y"],"inStock":false}
	],"followUpQuestion":"?"}`
	b := New(&mockLLM{content: payload}, 50, 0)

	set, err := b.GetProductRecommendations(context.Background(), "stuff")

	require.NoError(t, err)
	require.Len(t, set.Recommendations, 2, "duplicate and id-less products dropped")
	assert.Equal(t, 5.0, set.Recommendations[0].Rating, "rating clamped high")
	assert.NotNil(t, set.Recommendations[0].Pros)
	assert.NotNil(t, set.Recommendations[0].Cons)
	assert.Equal(t, 0.0, set.Recommendations[1].Rating, "rating clamped low")
}

func TestModelCallsCarryTimeout(t *testing.T) {
	client := &mockLLM{content: validPayload}
	b := New(client, 50, 5*time.Second)

	_, err := b.GetProductRecommendations(context.Background(), "earbuds")
	require.NoError(t, err)

	client.content = "sure thing"
	_, err = b.GetAIResponse(context.Background(), nil, "hi")
	require.NoError(t, err)

	require.Len(t, client.deadlines, 2, "every model call gets a deadline")
	for _, deadline := range client.deadlines {
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	}
}

func TestGetAIResponseBuildsChatMessages(t *testing.T) {
	client := &mockLLM{content: "Happy to help!"}
	b := New(client, 50, 0)

	history := []model.ChatMessage{
		{Role: model.RoleAssistant, Content: model.Greeting},
		{Role: model.RoleUser, Content: "find me a laptop"},
		{Role: model.RoleAssistant, Content: "Sure, gaming or work?"},
	}
	reply, err := b.GetAIResponse(context.Background(), history, "gaming")

	require.NoError(t, err)
	assert.Equal(t, "Happy to help!", reply)

	require.Len(t, client.reqs, 1)
	msgs := client.reqs[0].Messages
	// leading assistant greeting dropped so the list starts with a user turn
	require.Len(t, msgs, 3)
	assert.Equal(t, string(model.RoleUser), msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "find me a laptop")
	assert.Contains(t, msgs[0].Content, "ShopWise", "persona prepended to first user turn")
	assert.Equal(t, string(model.RoleAssistant), msgs[1].Role)
	assert.Equal(t, string(model.RoleUser), msgs[2].Role)
	assert.Equal(t, "gaming", msgs[2].Content)
}

func TestGetAIResponseHistoryWindow(t *testing.T) {
	client := &mockLLM{content: "ok"}
	b := New(client, 4, 0)

	var history []model.ChatMessage
	for i := 0; i < 10; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		history = append(history, model.ChatMessage{Role: role, Content: "turn"})
	}

	_, err := b.GetAIResponse(context.Background(), history, "latest")

	require.NoError(t, err)
	require.Len(t, client.reqs, 1)
	assert.LessOrEqual(t, len(client.reqs[0].Messages), 5)
}

func TestGetAIResponseErrors(t *testing.T) {
	b := New(&mockLLM{err: errors.New("boom")}, 50, 0)
	_, err := b.GetAIResponse(context.Background(), nil, "hi")
	assert.True(t, IsBackend(err))

	b = New(&mockLLM{content: "   "}, 50, 0)
	_, err = b.GetAIResponse(context.Background(), nil, "hi")
	assert.True(t, IsInvalidResponse(err))

	client := &mockLLM{content: "ok"}
	b = New(client, 50, 0)
	_, err = b.GetAIResponse(context.Background(), nil, "  ")
	assert.True(t, IsValidation(err))
	assert.Empty(t, client.reqs)
}
