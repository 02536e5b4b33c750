package store

import (
	"encoding/json"
	"log"

	"github.com/pranavmanvics24/ecowave-client/internal/api"
	"github.com/pranavmanvics24/ecowave-client/internal/state"
)

// CartStorageName is the fixed record name the cart persists under.
const CartStorageName = "cart-storage"

// CartItem is a product in the cart plus its quantity. At most one item
// exists per product ID; quantity is always >= 1.
type CartItem struct {
	api.Product
	Quantity int `json:"quantity"`
}

type cartState struct {
	Items []CartItem `json:"items"`
}

// CartStore holds the authoritative client-side cart. State is loaded once
// at construction and written back after every mutation; insertion order of
// items is preserved.
type CartStore struct {
	storage state.Storage
	items   []CartItem
}

// NewCartStore creates a cart store bound to the given storage, restoring
// any previously persisted cart.
func NewCartStore(storage state.Storage) *CartStore {
	s := &CartStore{storage: storage}

	raw, ok, err := storage.Load(CartStorageName)
	if err != nil {
		log.Printf("[Cart] Failed to load persisted cart: %v", err)
		return s
	}
	if ok {
		var persisted cartState
		if err := json.Unmarshal(raw, &persisted); err != nil {
			log.Printf("[Cart] Failed to decode persisted cart: %v", err)
			return s
		}
		s.items = persisted.Items
	}
	return s
}

// AddItem puts a product in the cart. An existing item for the same product
// ID has its quantity incremented by 1 and keeps its position; a new item
// is appended with quantity 1.
func (s *CartStore) AddItem(product api.Product) {
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}
	s.items = append(s.items, CartItem{Product: product, Quantity: 1})
	s.persist()
}

// RemoveItem deletes the item for a product ID. Removing an absent ID is a
// no-op.
func (s *CartStore) RemoveItem(productID string) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateQuantity sets an item's quantity. A quantity <= 0 removes the item
// entirely; other fields and relative ordering are left unchanged.
func (s *CartStore) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Clear empties the cart.
func (s *CartStore) Clear() {
	s.items = nil
	s.persist()
}

// Items returns a copy of the cart contents in insertion order.
func (s *CartStore) Items() []CartItem {
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of price x quantity over all items. Zero for an empty
// cart.
func (s *CartStore) Total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the sum of quantities over all items. Zero for an empty cart.
func (s *CartStore) Count() int {
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartStore) persist() {
	raw, err := json.Marshal(cartState{Items: s.items})
	if err != nil {
		log.Printf("[Cart] Failed to encode cart state: %v", err)
		return
	}
	if err := s.storage.Save(CartStorageName, raw); err != nil {
		log.Printf("[Cart] Failed to persist cart: %v", err)
	}
}
