package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// stubFetcher implements service.RecommendationFetcher.
type stubFetcher struct {
	set *model.RecommendationSet
	err error
}

func (s *stubFetcher) GetProductRecommendations(ctx context.Context, query string) (*model.RecommendationSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.set, nil
}

// stubResponder implements service.ChatResponder.
type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) GetAIResponse(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestRouter(t *testing.T, fetcher *stubFetcher, responder *stubResponder) (*chi.Mux, *service.SessionStore) {
	t.Helper()
	log := logger.NewNop()
	sessions := service.NewSessionStore(
		service.NewRecommendationService(fetcher, log),
		service.NewChatService(responder, log),
		nil,
		time.Minute,
		log,
	)

	sessionHandler := NewSessionHandler(sessions, log)
	queryHandler := NewQueryHandler(sessions, []string{"Smartphones", "Laptops"}, log)
	chatHandler := NewChatHandler(sessions, log)
	cartHandler := NewCartHandler(sessions, log)

	r := chi.NewRouter()
	r.Get("/suggestions", queryHandler.Suggestions)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Post("/query", queryHandler.Submit)
			r.Post("/suggestion", queryHandler.SubmitSuggestion)
			r.Post("/chat", chatHandler.Send)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
			r.Post("/favorites/{productId}", cartHandler.ToggleFavorite)
			r.Post("/notifications/dismiss", sessionHandler.DismissNotification)
		})
	})
	return r, sessions
}

func earbudSet() *model.RecommendationSet {
	return &model.RecommendationSet{
		Recommendations: []model.Product{
			{
				ID:      "p1",
				Name:    "EarBud X",
				Price:   decimal.RequireFromString("49.99"),
				Rating:  4.5,
				Pros:    []string{"Great battery"},
				Cons:    []string{"Pricey"},
				InStock: true,
			},
		},
		FollowUpQuestion: "Wired or wireless?",
	}
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp model.CreateSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Session.ID)
	return resp.Session.ID
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{reply: "hi"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp model.CreateSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.QueryIdle, resp.Snapshot.QueryState)
	require.Len(t, resp.Snapshot.Conversation, 1)
	assert.Equal(t, model.RoleAssistant, resp.Snapshot.Conversation[0].Role)
}

func TestSubmitQueryEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{})
	id := createSession(t, r)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/query", `{"query":"wireless earbuds"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap model.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, model.QueryResultsReady, snap.QueryState)
	require.NotNil(t, snap.Results)
	assert.Len(t, snap.Results.Recommendations, 1)
}

func TestSubmitQueryEmptyRejected(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{})
	id := createSession(t, r)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/query", `{"query":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionIDValidation(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{}, &stubResponder{})

	rec := doJSON(r, http.MethodPost, "/sessions/not-a-uuid/query", `{"query":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodPost, "/sessions/33333333-3333-7333-8333-333333333333/query", `{"query":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{})
	id := createSession(t, r)
	doJSON(r, http.MethodPost, "/sessions/"+id+"/query", `{"query":"earbuds"}`)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/cart/items", `{"productId":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap model.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Len(t, snap.Cart.Entries, 1)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "Added to cart!", snap.Notification.Message)

	rec = doJSON(r, http.MethodPost, "/sessions/"+id+"/cart/items", `{"productId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// removal of an absent product is still 200
	rec = doJSON(r, http.MethodDelete, "/sessions/"+id+"/cart/items/ghost", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodDelete, "/sessions/"+id+"/cart/items/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Empty(t, snap.Cart.Entries)
}

func TestChatEndpointFallback(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{}, &stubResponder{err: assert.AnError})
	id := createSession(t, r)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap model.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Len(t, snap.Conversation, 3)
	assert.Equal(t, model.ChatFallback, snap.Conversation[2].Content)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, model.SeverityError, snap.Notification.Severity)
}

func TestDismissNotification(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{})
	id := createSession(t, r)
	doJSON(r, http.MethodPost, "/sessions/"+id+"/query", `{"query":"earbuds"}`)
	doJSON(r, http.MethodPost, "/sessions/"+id+"/cart/items", `{"productId":"p1"}`)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/notifications/dismiss", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap model.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.NotNil(t, snap.Notification)
	assert.False(t, snap.Notification.Visible)
	assert.Equal(t, "Added to cart!", snap.Notification.Message)
}

func TestSuggestionsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{}, &stubResponder{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suggestions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SuggestionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Smartphones", "Laptops"}, resp.Suggestions)
}

func TestSuggestionEndpointMatchesQueryPath(t *testing.T) {
	r, _ := newTestRouter(t, &stubFetcher{set: earbudSet()}, &stubResponder{})
	id := createSession(t, r)

	rec := doJSON(r, http.MethodPost, "/sessions/"+id+"/suggestion", `{"suggestion":"Smartwatches"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap model.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, model.QueryResultsReady, snap.QueryState)
}
