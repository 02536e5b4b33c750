package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// List Products Tests
// ============================================

func TestClient_ListProducts_QueryParams(t *testing.T) {
	tests := []struct {
		name         string
		filters      ProductFilters
		wantCategory string
		wantSearch   string
		hasCategory  bool
		hasSearch    bool
	}{
		{"category only", ProductFilters{Category: "electronics"}, "electronics", "", true, false},
		{"category all omitted", ProductFilters{Category: "all"}, "", "", false, false},
		{"empty filters", ProductFilters{}, "", "", false, false},
		{"search only", ProductFilters{Search: "lamp"}, "", "lamp", false, true},
		{"both", ProductFilters{Category: "books", Search: "go"}, "books", "go", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var query map[string][]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				_ = json.NewEncoder(w).Encode(map[string]any{"products": []Product{}})
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.ListProducts(context.Background(), tt.filters)
			require.NoError(t, err)

			_, hasCategory := query["category"]
			_, hasSearch := query["search"]
			assert.Equal(t, tt.hasCategory, hasCategory)
			assert.Equal(t, tt.hasSearch, hasSearch)
			if tt.hasCategory {
				assert.Equal(t, tt.wantCategory, query["category"][0])
			}
			if tt.hasSearch {
				assert.Equal(t, tt.wantSearch, query["search"][0])
			}
		})
	}
}

func TestClient_ListProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"products": []Product{
				{ID: "p1", Title: "Desk Lamp", Price: 500, Badge: "Used"},
				{ID: "p2", Title: "Paperback", Price: 150, Badge: "Like New"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.ListProducts(context.Background(), ProductFilters{})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Desk Lamp", products[0].Title)
	assert.Equal(t, 500.0, products[0].Price)
}

func TestClient_ListProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.ListProducts(context.Background(), ProductFilters{})

	assert.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "failed to fetch products")
}

// ============================================
// Get Product Tests
// ============================================

func TestClient_GetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"product": Product{
				ID:        "p1",
				Title:     "Desk Lamp",
				Price:     500,
				EcoImpact: &EcoImpact{CO2: 50, Water: 100, Waste: 1.5},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	product, err := client.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", product.Title)
	require.NotNil(t, product.EcoImpact)
	assert.Equal(t, 50.0, product.EcoImpact.CO2)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Product not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	product, err := client.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
}

// ============================================
// Create / Update / Delete Tests
// ============================================

func TestClient_CreateProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req NewProduct
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Desk Lamp", req.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"product": Product{ID: "assigned-id", Title: req.Title, Price: req.Price, Badge: req.Badge},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	product, err := client.CreateProduct(context.Background(), NewProduct{
		Title: "Desk Lamp", Description: "Warm light", Price: 500, Badge: "Used", Image: "/placeholder.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "assigned-id", product.ID)
}

func TestClient_UpdateProduct_OnlySuppliedFieldsSent(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/p1", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		_ = json.NewEncoder(w).Encode(map[string]any{"product": Product{ID: "p1", Title: "New Title"}})
	}))
	defer server.Close()

	title := "New Title"
	price := 650.0
	client := NewClient(server.URL)
	product, err := client.UpdateProduct(context.Background(), "p1", ProductUpdate{Title: &title, Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "New Title", product.Title)
	assert.Contains(t, body, "title")
	assert.Contains(t, body, "price")
	assert.NotContains(t, body, "description")
	assert.NotContains(t, body, "badge")
	assert.NotContains(t, body, "image")
}

func TestClient_DeleteProduct_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.DeleteProduct(context.Background(), "p1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

// ============================================
// Mark Sold Tests
// ============================================

func TestClient_MarkProductSold_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1/sold", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "buyer@example.com", req["buyer_email"])

		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Product marked as sold"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.MarkProductSold(context.Background(), "p1", "buyer@example.com", "jwt-token")

	require.NoError(t, err)
}

func TestClient_MarkProductSold_BackendErrorSurfaced(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    map[string]string
		wantMsg string
	}{
		{"not owner", http.StatusForbidden, map[string]string{"error": "Unauthorized"}, "Unauthorized"},
		{"already sold", http.StatusBadRequest, map[string]string{"error": "Product already sold"}, "Product already sold"},
		{"invalid token", http.StatusUnauthorized, map[string]string{"message": "Token is invalid!"}, "Token is invalid!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			err := client.MarkProductSold(context.Background(), "p1", "", "bad-token")

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

// ============================================
// Seller Listings / Impact Tests
// ============================================

func TestClient_ListProductsBySeller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/seller/seller@example.com", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"products": []Product{{ID: "p1", SellerEmail: "seller@example.com"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.ListProductsBySeller(context.Background(), "seller@example.com")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "seller@example.com", products[0].SellerEmail)
}

func TestClient_GetImpactStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/impact", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"impact": ImpactStats{CO2Saved: 65, WaterSaved: 2100, WasteSaved: 2, ItemsRecycled: 2, ItemsPurchased: 1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	stats, err := client.GetImpactStats(context.Background(), "jwt-token")

	require.NoError(t, err)
	assert.Equal(t, 65.0, stats.CO2Saved)
	assert.Equal(t, 2, stats.ItemsRecycled)
	assert.Equal(t, 1, stats.ItemsPurchased)
}

// ============================================
// Inquiry Tests
// ============================================

func TestClient_CreateInquiry_Success(t *testing.T) {
	tests := []struct {
		name      string
		emailSent bool
	}{
		{"email dispatched", true},
		{"email skipped", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/inquiries", r.URL.Path)

				var req InquiryRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "p1", req.ProductID)

				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"inquiry": Inquiry{
						InquiryID:    "inq-1",
						ProductID:    req.ProductID,
						ProductTitle: "Desk Lamp",
						BuyerName:    req.BuyerName,
						Status:       "sent",
					},
					"email_sent": tt.emailSent,
				})
			}))
			defer server.Close()

			client := NewClient(server.URL)
			inquiry, emailSent, err := client.CreateInquiry(context.Background(), InquiryRequest{
				ProductID: "p1", BuyerName: "Alice", BuyerEmail: "alice@example.com", BuyerMessage: "Is it available?",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.emailSent, emailSent)
			assert.Equal(t, "inq-1", inquiry.InquiryID)
			assert.Equal(t, "sent", inquiry.Status)
		})
	}
}

func TestClient_CreateInquiry_BackendErrorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Seller contact information not available"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.CreateInquiry(context.Background(), InquiryRequest{ProductID: "p1"})

	require.Error(t, err)
	assert.Equal(t, "Seller contact information not available", err.Error())
}

func TestClient_CreateInquiry_GenericErrorWithoutText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.CreateInquiry(context.Background(), InquiryRequest{ProductID: "p1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit inquiry")
}
