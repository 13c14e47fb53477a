package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopwise-ai/assistant-core/internal/backend"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
	"github.com/shopwise-ai/assistant-core/pkg/metrics"
)

// User-facing notification and error copy.
const (
	msgAddedToCart          = "Added to cart!"
	msgRemovedFromCart      = "Removed from cart"
	msgAddedToFavorites     = "Added to favorites!"
	msgRemovedFromFavorites = "Removed from favorites"
	msgChatFailed           = "Failed to get AI response"
	msgQueryFailed          = "Sorry, there was an error fetching product recommendations. Please try again."
)

// Orchestrator is the single source of truth for one session's entities and
// the state machine behind every user intent. All entity mutation goes
// through the managers; HTTP brings real parallelism, so entity access is
// serialized by a mutex with independent in-flight guards for the query and
// chat calls. Backend calls run outside the lock.
type Orchestrator struct {
	session model.Session

	recommendations *RecommendationService
	chat            *ChatService
	events          ActivityPublisher
	logger          *logger.Logger

	mu            sync.Mutex
	queryState    model.QueryState
	queryError    string
	results       *model.RecommendationSet
	queryInFlight bool
	chatInFlight  bool
	conversation  []model.ChatMessage
	cart          *CartManager
	favorites     *FavoritesManager
	notifier      *Notifier
}

// NewOrchestrator creates a session orchestrator seeded with the assistant
// greeting.
func NewOrchestrator(
	session model.Session,
	recs *RecommendationService,
	chat *ChatService,
	events ActivityPublisher,
	notificationTTL time.Duration,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		session:         session,
		recommendations: recs,
		chat:            chat,
		events:          events,
		logger:          log.WithSession(session.ID),
		queryState:      model.QueryIdle,
		conversation: []model.ChatMessage{
			{Role: model.RoleAssistant, Content: model.Greeting},
		},
		cart:      NewCartManager(),
		favorites: NewFavoritesManager(),
		notifier:  NewNotifier(notificationTTL),
	}
}

// Session returns the session identity.
func (o *Orchestrator) Session() model.Session {
	return o.session
}

// SubmitQuery runs the query state machine: idle -> loading ->
// {resultsReady | errored}. An empty query is rejected locally without a
// transition; a second query during flight is rejected without disturbing
// the current one. No notification is emitted on either outcome.
func (o *Orchestrator) SubmitQuery(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &backend.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	o.mu.Lock()
	if o.queryInFlight {
		o.mu.Unlock()
		return ErrQueryBusy
	}
	o.queryInFlight = true
	o.queryState = model.QueryLoading
	o.queryError = ""
	o.results = nil
	o.mu.Unlock()

	o.publish(ctx, model.ActivityQuerySubmitted, map[string]any{"query": query})

	set, err := o.recommendations.Fetch(ctx, query)

	o.mu.Lock()
	o.queryInFlight = false
	if err != nil {
		o.queryState = model.QueryErrored
		o.queryError = msgQueryFailed
		o.mu.Unlock()

		metrics.QueriesTotal.WithLabelValues("error").Inc()
		o.publish(ctx, model.ActivityQueryFailed, map[string]any{"query": query})
		return nil
	}
	o.results = set
	o.queryState = model.QueryResultsReady
	o.mu.Unlock()

	metrics.QueriesTotal.WithLabelValues("success").Inc()
	metrics.RecommendationsReturned.Observe(float64(len(set.Recommendations)))
	o.publish(ctx, model.ActivityQueryResolved, map[string]any{
		"query": query,
		"count": len(set.Recommendations),
	})
	return nil
}

// SubmitSuggestion sets the query text to the suggestion and submits it
// through the exact same path as a manual query.
func (o *Orchestrator) SubmitSuggestion(ctx context.Context, suggestion string) error {
	return o.SubmitQuery(ctx, suggestion)
}

// AddToCart resolves the product id and delegates to the cart manager.
// Out-of-stock products are accepted; stock is advisory.
func (o *Orchestrator) AddToCart(ctx context.Context, productID string) error {
	o.mu.Lock()
	product, ok := o.lookupProduct(productID)
	if !ok {
		o.mu.Unlock()
		return ErrProductNotFound
	}
	o.cart.AddItem(product)
	o.notifier.Notify(msgAddedToCart, model.SeveritySuccess)
	o.mu.Unlock()

	metrics.CartOpsTotal.WithLabelValues("add").Inc()
	o.publish(ctx, model.ActivityCartAdded, map[string]any{"product_id": productID})
	return nil
}

// RemoveFromCart delegates to the cart manager. Removing an absent id is a
// silent no-op but the notification is dispatched either way.
func (o *Orchestrator) RemoveFromCart(ctx context.Context, productID string) error {
	o.mu.Lock()
	o.cart.RemoveItem(productID)
	o.notifier.Notify(msgRemovedFromCart, model.SeverityInfo)
	o.mu.Unlock()

	metrics.CartOpsTotal.WithLabelValues("remove").Inc()
	o.publish(ctx, model.ActivityCartRemoved, map[string]any{"product_id": productID})
	return nil
}

// ToggleFavorite flips favorite membership for the product id.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, productID string) error {
	o.mu.Lock()
	product, ok := o.lookupProduct(productID)
	if !ok {
		o.mu.Unlock()
		return ErrProductNotFound
	}
	nowFavorite := o.favorites.Toggle(product)
	if nowFavorite {
		o.notifier.Notify(msgAddedToFavorites, model.SeveritySuccess)
	} else {
		o.notifier.Notify(msgRemovedFromFavorites, model.SeverityInfo)
	}
	o.mu.Unlock()

	action := "removed"
	if nowFavorite {
		action = "added"
	}
	metrics.FavoriteTogglesTotal.WithLabelValues(action).Inc()
	o.publish(ctx, model.ActivityFavoriteToggled, map[string]any{
		"product_id": productID,
		"favorite":   nowFavorite,
	})
	return nil
}

// SendChatMessage appends the user turn synchronously, then asks the
// backend for a reply. On failure the conversation still gains a fallback
// assistant turn and an error notification is raised; the chat machine
// always returns to idle.
func (o *Orchestrator) SendChatMessage(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return &backend.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	o.mu.Lock()
	if o.chatInFlight {
		o.mu.Unlock()
		return ErrChatBusy
	}
	o.chatInFlight = true
	o.conversation = append(o.conversation, model.ChatMessage{
		Role:    model.RoleUser,
		Content: message,
	})
	// history excludes the new user turn; the chat service sends it as the
	// latest message itself
	history := make([]model.ChatMessage, len(o.conversation)-1)
	copy(history, o.conversation[:len(o.conversation)-1])
	o.mu.Unlock()

	reply, err := o.chat.Reply(ctx, history, message)

	o.mu.Lock()
	o.chatInFlight = false
	if err != nil {
		o.conversation = append(o.conversation, model.ChatMessage{
			Role:    model.RoleAssistant,
			Content: model.ChatFallback,
		})
		o.notifier.Notify(msgChatFailed, model.SeverityError)
		o.mu.Unlock()

		metrics.ChatTurnsTotal.WithLabelValues("fallback").Inc()
		o.publish(ctx, model.ActivityChatTurn, map[string]any{"outcome": "fallback"})
		return nil
	}
	o.conversation = append(o.conversation, reply)
	o.mu.Unlock()

	metrics.ChatTurnsTotal.WithLabelValues("success").Inc()
	o.publish(ctx, model.ActivityChatTurn, map[string]any{"outcome": "success"})
	return nil
}

// DismissNotification hides the active notification.
func (o *Orchestrator) DismissNotification() {
	o.notifier.Dismiss()
}

// Snapshot returns a consistent view of all session entities.
func (o *Orchestrator) Snapshot() model.SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	conversation := make([]model.ChatMessage, len(o.conversation))
	copy(conversation, o.conversation)

	var results *model.RecommendationSet
	if o.results != nil {
		set := *o.results
		results = &set
	}

	return model.SessionSnapshot{
		SessionID:  o.session.ID,
		QueryState: o.queryState,
		QueryError: o.queryError,
		Results:    results,
		Cart: model.CartView{
			Entries: o.cart.Entries(),
			Total:   o.cart.Total(),
		},
		Favorites:    o.favorites.List(),
		Conversation: conversation,
		Notification: o.notifier.Current(),
		ChatPending:  o.chatInFlight,
	}
}

// lookupProduct resolves a product id against the current recommendation
// set, then the cart, then favorites. Cart and favorites keep products
// addressable after their recommendation set is replaced. Caller holds the
// lock.
func (o *Orchestrator) lookupProduct(productID string) (model.Product, bool) {
	if o.results != nil {
		for _, p := range o.results.Recommendations {
			if p.ID == productID {
				return p, true
			}
		}
	}
	if entry, ok := o.cart.Get(productID); ok {
		return entry.Product, true
	}
	if p, ok := o.favorites.Get(productID); ok {
		return p, true
	}
	return model.Product{}, false
}

// publish sends an advisory activity event; failures are logged and never
// affect session state.
func (o *Orchestrator) publish(ctx context.Context, typ model.ActivityType, detail map[string]any) {
	if o.events == nil {
		return
	}
	event := &model.ActivityEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		SessionID: o.session.ID,
		Type:      typ,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := o.events.PublishActivity(ctx, event); err != nil {
		o.logger.Warn("failed to publish activity event",
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}
