// Package storefront composes the stores, the AI gateway and the filter
// state into the single mutation surface the rendering layer drives.
package storefront

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"novasphere/internal/models"
	"novasphere/internal/services"
	"novasphere/internal/views"
	"novasphere/pkg/pubsub"
)

// Recommender is the async boundary to the external model service. Both
// operations degrade to an empty list on failure rather than erroring.
type Recommender interface {
	Recommend(ctx context.Context, cartItems []models.CartItem, catalog []models.Product) []string
	Search(ctx context.Context, query string, catalog []models.Product) []string
}

// DefaultAITimeout bounds a gateway call so a hung request cannot leave the
// loading state up indefinitely.
const DefaultAITimeout = 10 * time.Second

// Config carries the storefront's tunables.
type Config struct {
	AITimeout time.Duration
}

// Storefront owns one application session's state. Cart mutations, filter
// state and result installation are serialized under one mutex, so the
// line-count comparison that drives recommendation refreshes is atomic with
// the mutation it observes; each store additionally guards its own state.
// The gateway calls are the only async points. A nil gateway leaves every AI
// feature in permanent fail-soft mode.
type Storefront struct {
	catalog *services.CatalogService
	session *services.SessionService
	cart    *services.CartService
	orders  *services.OrderService
	gateway Recommender
	bus     *pubsub.Bus

	aiTimeout time.Duration

	mu             sync.RWMutex
	categoryFilter string
	searchIDs      []string
	recommendedIDs []string

	recSeq    atomic.Uint64
	searchSeq atomic.Uint64
	busy      atomic.Int32
}

// New wires a storefront from its stores. A cart restored from the
// persistence slot primes an initial recommendation fetch, the same as the
// cart having just reached that size.
func New(catalog *services.CatalogService, session *services.SessionService, cart *services.CartService, orders *services.OrderService, gateway Recommender, bus *pubsub.Bus, cfg Config) *Storefront {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	s := &Storefront{
		catalog:        catalog,
		session:        session,
		cart:           cart,
		orders:         orders,
		gateway:        gateway,
		bus:            bus,
		aiTimeout:      timeout,
		categoryFilter: views.CategoryAll,
	}
	if cart.Lines() > 0 {
		s.refreshRecommendations()
	}
	return s
}

// AddToCart adds one unit of the product to the cart. A new line (as
// opposed to a quantity bump on an existing one) triggers a recommendation
// refresh; quantity-only changes deliberately do not.
func (s *Storefront) AddToCart(productID string) error {
	product, ok := s.findProduct(productID)
	if !ok {
		return models.ErrUnknownProduct
	}

	s.mu.Lock()
	before := s.cart.Lines()
	s.cart.AddItem(product)
	changed := s.cart.Lines() != before
	s.mu.Unlock()

	s.bus.Publish(pubsub.TopicStoreChanged, "cart")
	if changed {
		s.refreshRecommendations()
	}
	return nil
}

// RemoveFromCart drops the whole line for the product id. Removing a line
// changes the cart's line count and so triggers a recommendation refresh;
// unknown ids are a no-op and trigger nothing.
func (s *Storefront) RemoveFromCart(productID string) {
	s.mu.Lock()
	before := s.cart.Lines()
	s.cart.RemoveItem(productID)
	changed := s.cart.Lines() != before
	s.mu.Unlock()
	if !changed {
		return
	}
	s.bus.Publish(pubsub.TopicStoreChanged, "cart")
	s.refreshRecommendations()
}

// Login starts a session for the given role, replacing any prior session.
func (s *Storefront) Login(role models.Role) (models.User, string, error) {
	user, token, err := s.session.Login(role)
	if err != nil {
		return models.User{}, "", err
	}
	s.bus.Publish(pubsub.TopicStoreChanged, "session")
	return user, token, nil
}

// Logout ends the session. The cart survives a logout.
func (s *Storefront) Logout() {
	s.session.Logout()
	s.bus.Publish(pubsub.TopicStoreChanged, "session")
}

// CurrentUser returns the active user, or nil.
func (s *Storefront) CurrentUser() *models.User {
	return s.session.Current()
}

// Checkout turns the current cart into an order and clears the cart. It
// fails with models.ErrNotLoggedIn when no session is active; the caller
// should redirect to login. The emptied cart triggers the usual
// recommendation refresh, which clears the recommendation set.
func (s *Storefront) Checkout() (models.Order, error) {
	s.mu.Lock()
	order, err := s.orders.Checkout(s.session.Current(), s.cart.Items())
	if err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	s.cart.Clear()
	s.mu.Unlock()

	s.bus.Publish(pubsub.TopicStoreChanged, "cart")
	s.bus.Publish(pubsub.TopicOrderCreated, order.ID)
	s.refreshRecommendations()
	return order, nil
}

// OrderHistory returns the current user's orders, newest first, or nil when
// logged out.
func (s *Storefront) OrderHistory() []models.Order {
	user := s.session.Current()
	if user == nil {
		return nil
	}
	return s.orders.OrdersForUser(user.ID)
}

// AddProduct inserts a product into the catalog with a fresh id.
func (s *Storefront) AddProduct(product models.Product) (models.Product, error) {
	created, err := s.catalog.AddProduct(product)
	if err != nil {
		return models.Product{}, err
	}
	s.bus.Publish(pubsub.TopicStoreChanged, "catalog")
	return created, nil
}

// RemoveProduct deletes a catalog product. Cart lines for it survive.
func (s *Storefront) RemoveProduct(id string) {
	s.catalog.RemoveProduct(id)
	s.bus.Publish(pubsub.TopicStoreChanged, "catalog")
}

// SetCategoryFilter restricts the product listing to one category;
// views.CategoryAll lifts the restriction.
func (s *Storefront) SetCategoryFilter(category string) {
	s.mu.Lock()
	s.categoryFilter = category
	s.mu.Unlock()
	s.bus.Publish(pubsub.TopicStoreChanged, "filter")
}

// Search resolves a user query through the gateway into a search
// restriction. A blank query clears the restriction locally without a
// gateway call. A failed search restricts to nothing rather than erroring.
func (s *Storefront) Search(query string) {
	if strings.TrimSpace(query) == "" {
		seq := s.searchSeq.Add(1) // supersede any in-flight search
		s.mu.Lock()
		if seq == s.searchSeq.Load() {
			s.searchIDs = nil
		}
		s.mu.Unlock()
		s.bus.Publish(pubsub.TopicAIResult, "search")
		return
	}

	seq := s.searchSeq.Add(1)
	if s.gateway == nil {
		s.installSearch(seq, []string{})
		return
	}

	catalog := s.catalog.Products()
	s.busy.Add(1)
	go func() {
		defer s.busy.Add(-1)
		ctx, cancel := context.WithTimeout(context.Background(), s.aiTimeout)
		defer cancel()
		s.installSearch(seq, s.gateway.Search(ctx, query, catalog))
	}()
}

// refreshRecommendations re-derives the recommendation set for the current
// cart. Called only when the number of distinct cart lines changed.
func (s *Storefront) refreshRecommendations() {
	seq := s.recSeq.Add(1)

	items := s.cart.Items()
	if len(items) == 0 || s.gateway == nil {
		s.installRecommendations(seq, nil)
		return
	}

	catalog := s.catalog.Products()
	s.busy.Add(1)
	go func() {
		defer s.busy.Add(-1)
		ctx, cancel := context.WithTimeout(context.Background(), s.aiTimeout)
		defer cancel()
		s.installRecommendations(seq, s.gateway.Recommend(ctx, items, catalog))
	}()
}

// installRecommendations applies a resolved fetch unless a newer cart state
// superseded it while it was in flight. The staleness check runs under the
// state mutex so a superseded fetch cannot slip past the check and then
// overwrite a newer result.
func (s *Storefront) installRecommendations(seq uint64, ids []string) {
	s.mu.Lock()
	if seq != s.recSeq.Load() {
		s.mu.Unlock()
		return
	}
	s.recommendedIDs = ids
	s.mu.Unlock()
	s.bus.Publish(pubsub.TopicAIResult, "recommendations")
}

func (s *Storefront) installSearch(seq uint64, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	s.mu.Lock()
	if seq != s.searchSeq.Load() {
		s.mu.Unlock()
		return
	}
	s.searchIDs = ids
	s.mu.Unlock()
	s.bus.Publish(pubsub.TopicAIResult, "search")
}

// FilteredProducts is the product listing under the current category and
// search filters, derived fresh on every call.
func (s *Storefront) FilteredProducts() []models.Product {
	s.mu.RLock()
	category, searchIDs := s.categoryFilter, s.searchIDs
	s.mu.RUnlock()
	return views.FilteredProducts(s.catalog.Products(), category, searchIDs)
}

// Recommendations is the catalog resolution of the last installed
// recommendation result.
func (s *Storefront) Recommendations() []models.Product {
	s.mu.RLock()
	ids := s.recommendedIDs
	s.mu.RUnlock()
	return views.RecommendedProducts(s.catalog.Products(), ids)
}

// Catalog returns the unfiltered catalog.
func (s *Storefront) Catalog() []models.Product {
	return s.catalog.Products()
}

// CartItems returns the current cart lines.
func (s *Storefront) CartItems() []models.CartItem {
	return s.cart.Items()
}

// CartCount is the badge count, the sum of quantities.
func (s *Storefront) CartCount() int {
	return views.CartItemCount(s.cart.Items())
}

// CartTotal is the recomputed cart total.
func (s *Storefront) CartTotal() float64 {
	return views.CartTotal(s.cart.Items())
}

// AIBusy reports whether a gateway call is outstanding. The flag is
// informational; mutations never block on it.
func (s *Storefront) AIBusy() bool {
	return s.busy.Load() > 0
}

func (s *Storefront) findProduct(id string) (models.Product, bool) {
	for _, p := range s.catalog.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
