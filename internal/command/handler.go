package command

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/pranavmanvics24/ecowave-client/internal/api"
	"github.com/pranavmanvics24/ecowave-client/internal/auth"
	"github.com/pranavmanvics24/ecowave-client/internal/query"
	"github.com/pranavmanvics24/ecowave-client/internal/store"
)

// MaxImageBytes bounds inline-encoded listing images.
const MaxImageBytes = 5 << 20

// PlaceholderImage is used when a listing has no uploaded image.
const PlaceholderImage = "/placeholder.jpg"

// Handler runs the client's action flows: each method is what a page or
// dialog event handler did, minus rendering. Stores are never updated
// speculatively ahead of a remote call; a failed call leaves prior state
// untouched.
type Handler struct {
	client  *api.Client
	queries *query.Handler
	authSt  *store.AuthStore
	tokens  *store.TokenStore
}

func NewHandler(client *api.Client, queries *query.Handler, authSt *store.AuthStore, tokens *store.TokenStore) *Handler {
	return &Handler{
		client:  client,
		queries: queries,
		authSt:  authSt,
		tokens:  tokens,
	}
}

// CreateListing validates the form locally, resolves the listing image, and
// creates the product. The products cache is refreshed on success.
func (h *Handler) CreateListing(ctx context.Context, cmd CreateListing) (*api.Product, error) {
	if cmd.Title == "" || cmd.Description == "" || cmd.Badge == "" || cmd.SellerEmail == "" {
		return nil, ErrMissingFields
	}
	if cmd.Price < 0 {
		return nil, ErrInvalidPrice
	}

	image, err := resolveImage(cmd.ImagePath)
	if err != nil {
		return nil, err
	}

	product, err := h.client.CreateProduct(ctx, api.NewProduct{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Price:          cmd.Price,
		Badge:          cmd.Badge,
		Image:          image,
		Category:       cmd.Category,
		Material:       cmd.Material,
		SellerEmail:    cmd.SellerEmail,
		SellerLocation: cmd.SellerLocation,
		SellerPhone:    cmd.SellerPhone,
	})
	if err != nil {
		return nil, err
	}

	h.queries.Invalidate("products")
	log.Printf("[Command] Created listing %s", product.ID)
	return product, nil
}

// UpdateListing applies a partial edit. Caches for the product list, the
// product itself, and the seller's listings are refreshed on success.
func (h *Handler) UpdateListing(ctx context.Context, cmd UpdateListing) (*api.Product, error) {
	update := api.ProductUpdate{
		Title:       cmd.Fields.Title,
		Description: cmd.Fields.Description,
		Price:       cmd.Fields.Price,
		Badge:       cmd.Fields.Badge,
		Image:       cmd.Fields.Image,
		Category:    cmd.Fields.Category,
	}
	product, err := h.client.UpdateProduct(ctx, cmd.ProductID, update)
	if err != nil {
		return nil, err
	}

	h.queries.Invalidate(
		"products",
		query.ProductKey(cmd.ProductID),
		query.SellerListingsKey(cmd.SellerEmail),
	)
	return product, nil
}

// DeleteListing removes a listing and refreshes the affected caches.
func (h *Handler) DeleteListing(ctx context.Context, cmd DeleteListing) error {
	if err := h.client.DeleteProduct(ctx, cmd.ProductID); err != nil {
		return err
	}
	h.queries.Invalidate("products", query.SellerListingsKey(cmd.SellerEmail))
	return nil
}

// MarkSold marks a listing sold. The stored bearer token proves ownership;
// a missing token fails locally before any network call.
func (h *Handler) MarkSold(ctx context.Context, cmd MarkSold) error {
	token := h.tokens.Get()
	if token == "" {
		return ErrNotAuthenticated
	}
	if err := h.client.MarkProductSold(ctx, cmd.ProductID, cmd.BuyerEmail, token); err != nil {
		return err
	}
	h.queries.Invalidate(
		query.ProductKey(cmd.ProductID),
		"products",
		"seller-listings",
		query.ImpactKey,
	)
	return nil
}

// ContactSeller submits a buyer inquiry. A seller without a contact email
// is rejected locally before any network call; on success the returned
// flag reports whether the notification email was actually dispatched.
func (h *Handler) ContactSeller(ctx context.Context, cmd ContactSeller) (bool, error) {
	if cmd.SellerEmail == "" {
		return false, ErrSellerUnavailable
	}
	if cmd.BuyerName == "" || cmd.BuyerEmail == "" || cmd.Message == "" {
		return false, ErrMissingFields
	}

	_, emailSent, err := h.client.CreateInquiry(ctx, api.InquiryRequest{
		ProductID:    cmd.ProductID,
		BuyerName:    cmd.BuyerName,
		BuyerEmail:   cmd.BuyerEmail,
		BuyerMessage: cmd.Message,
	})
	if err != nil {
		return false, err
	}
	return emailSent, nil
}

// PasswordLogin is the local form login: the backend has no password
// endpoint, so identity comes from the form itself. Both fields are
// required; the display name is derived from the email's local part.
func (h *Handler) PasswordLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	h.authSt.Login(store.User{Name: name, Email: email})
	return nil
}

// CompleteLogin finishes the identity-provider redirect: extract the token
// from the callback URL, decode its claims, log the user in, and persist
// the token for authenticated calls. Any decode failure is a login failure
// and leaves auth state untouched.
func (h *Handler) CompleteLogin(callbackURL string) (store.User, error) {
	token, err := auth.TokenFromCallbackURL(callbackURL)
	if err != nil {
		return store.User{}, err
	}
	name, email, err := auth.DecodeIdentityToken(token)
	if err != nil {
		return store.User{}, fmt.Errorf("failed to process login token: %w", err)
	}

	user := store.User{Name: name, Email: email}
	h.authSt.Login(user)
	h.tokens.Set(token)
	return user, nil
}

// Logout ends the session; the auth store also discards the bearer token.
func (h *Handler) Logout() {
	h.authSt.Logout()
	h.queries.Invalidate(query.ImpactKey, "seller-listings")
}

// resolveImage loads and inline-encodes a listing image, enforcing the size
// and type limits. An empty path yields the placeholder.
func resolveImage(path string) (string, error) {
	if path == "" {
		return PlaceholderImage, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", ErrUnsupportedImage
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
