package query

import (
	"context"
	"strings"
	"sync"

	"github.com/pranavmanvics24/ecowave-client/internal/api"
)

// Handler serves reads through a keyed in-process cache, the way the
// original UI's data-fetching layer did: a cached key never re-issues the
// request, and writes invalidate the keys they affect. Only successful
// results are cached; failures always surface to the caller.
type Handler struct {
	client *api.Client

	mu    sync.Mutex
	cache map[string]any
}

func NewHandler(client *api.Client) *Handler {
	return &Handler{
		client: client,
		cache:  make(map[string]any),
	}
}

// Cache keys mirror the original query keys: one per filter combination,
// per product, per seller.

func ProductsKey(filters api.ProductFilters) string {
	category := filters.Category
	if category == "all" {
		category = ""
	}
	return "products/" + category + "/" + filters.Search
}

func ProductKey(id string) string {
	return "product/" + id
}

func SellerListingsKey(email string) string {
	return "seller-listings/" + email
}

const ImpactKey = "impact"

// Products lists products for a filter combination, cached per combination.
func (h *Handler) Products(ctx context.Context, filters api.ProductFilters) ([]api.Product, error) {
	key := ProductsKey(filters)
	if cached, ok := h.get(key); ok {
		return cached.([]api.Product), nil
	}
	products, err := h.client.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}
	h.set(key, products)
	return products, nil
}

// Product fetches a single product by ID, cached per ID.
func (h *Handler) Product(ctx context.Context, id string) (*api.Product, error) {
	key := ProductKey(id)
	if cached, ok := h.get(key); ok {
		return cached.(*api.Product), nil
	}
	product, err := h.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	h.set(key, product)
	return product, nil
}

// SellerListings fetches a seller's listings, cached per seller email.
func (h *Handler) SellerListings(ctx context.Context, email string) ([]api.Product, error) {
	key := SellerListingsKey(email)
	if cached, ok := h.get(key); ok {
		return cached.([]api.Product), nil
	}
	products, err := h.client.ListProductsBySeller(ctx, email)
	if err != nil {
		return nil, err
	}
	h.set(key, products)
	return products, nil
}

// Impact fetches the authenticated user's impact stats. Requires a bearer
// token.
func (h *Handler) Impact(ctx context.Context, token string) (*api.ImpactStats, error) {
	if cached, ok := h.get(ImpactKey); ok {
		return cached.(*api.ImpactStats), nil
	}
	impact, err := h.client.GetImpactStats(ctx, token)
	if err != nil {
		return nil, err
	}
	h.set(ImpactKey, impact)
	return impact, nil
}

// Invalidate drops every cached entry whose key starts with one of the
// given prefixes, forcing the next read to hit the backend.
func (h *Handler) Invalidate(prefixes ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key := range h.cache {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(h.cache, key)
				break
			}
		}
	}
}

func (h *Handler) get(key string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cached, ok := h.cache[key]
	return cached, ok
}

func (h *Handler) set(key string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache[key] = value
}
