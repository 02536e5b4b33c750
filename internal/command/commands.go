package command

import "errors"

var (
	ErrMissingFields     = errors.New("please fill in all required fields")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSellerUnavailable = errors.New("contact information not available for this seller")
	ErrImageTooLarge     = errors.New("image file is too large")
	ErrUnsupportedImage  = errors.New("unsupported image type")
)

// CreateListing carries the seller-supplied fields for a new listing. The
// backend fills in the ID, eco impact, status, and timestamp.
type CreateListing struct {
	Title          string
	Description    string
	Price          float64
	Badge          string
	Category       string
	Material       string
	ImagePath      string // optional; a placeholder image is used when empty
	SellerEmail    string
	SellerLocation string
	SellerPhone    string
}

// UpdateListing carries a partial edit of an existing listing. SellerEmail
// identifies whose cached listings to refresh.
type UpdateListing struct {
	ProductID   string
	SellerEmail string
	Fields      Fields
}

// Fields mirrors the editable listing fields; nil entries are left
// untouched server-side.
type Fields struct {
	Title       *string
	Description *string
	Price       *float64
	Badge       *string
	Image       *string
	Category    *string
}

// DeleteListing removes a listing the seller owns.
type DeleteListing struct {
	ProductID   string
	SellerEmail string
}

// MarkSold transitions a listing to sold, crediting impact stats to the
// seller and, when given, the buyer.
type MarkSold struct {
	ProductID  string
	BuyerEmail string
}

// ContactSeller sends a buyer inquiry about a product.
type ContactSeller struct {
	ProductID   string
	SellerEmail string // from the product; checked before any network call
	BuyerName   string
	BuyerEmail  string
	Message     string
}
