package api

// EcoImpact estimates the environmental savings attributed to reusing a
// product instead of buying new.
type EcoImpact struct {
	CO2   float64 `json:"co2"`
	Water float64 `json:"water"`
	Waste float64 `json:"waste"`
}

// Product is a marketplace listing. IDs are assigned by the backend; the
// client only ever holds ephemeral copies.
type Product struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Badge          string     `json:"badge"`
	Image          string     `json:"image"`
	Category       string     `json:"category,omitempty"`
	Material       string     `json:"material,omitempty"`
	EcoImpact      *EcoImpact `json:"eco_impact,omitempty"`
	SellerID       string     `json:"seller_id,omitempty"`
	SellerEmail    string     `json:"seller_email,omitempty"`
	SellerLocation string     `json:"seller_location,omitempty"`
	SellerPhone    string     `json:"seller_phone,omitempty"`
	Status         string     `json:"status,omitempty"`
	CreatedAt      string     `json:"created_at,omitempty"`
}

// NewProduct carries the fields for a listing-creation request. The backend
// assigns the ID, eco impact, status, and timestamp.
type NewProduct struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Badge          string  `json:"badge"`
	Image          string  `json:"image"`
	Category       string  `json:"category,omitempty"`
	Material       string  `json:"material,omitempty"`
	SellerID       string  `json:"seller_id,omitempty"`
	SellerEmail    string  `json:"seller_email,omitempty"`
	SellerLocation string  `json:"seller_location,omitempty"`
	SellerPhone    string  `json:"seller_phone,omitempty"`
}

// ProductUpdate is a partial update. Nil fields are left out of the request
// body and stay untouched server-side.
type ProductUpdate struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Badge          *string  `json:"badge,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Category       *string  `json:"category,omitempty"`
	SellerEmail    *string  `json:"seller_email,omitempty"`
	SellerLocation *string  `json:"seller_location,omitempty"`
	SellerPhone    *string  `json:"seller_phone,omitempty"`
}

// ProductFilters narrows a product listing. An empty or "all" category and
// an empty search text are omitted from the request.
type ProductFilters struct {
	Category string
	Search   string
}

// Inquiry is a buyer-to-seller contact message. Write-once, owned by the
// backend.
type Inquiry struct {
	InquiryID    string `json:"inquiry_id"`
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	BuyerName    string `json:"buyer_name"`
	BuyerEmail   string `json:"buyer_email"`
	BuyerMessage string `json:"buyer_message"`
	SellerEmail  string `json:"seller_email"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// InquiryRequest is the client-supplied part of an inquiry.
type InquiryRequest struct {
	ProductID    string `json:"product_id"`
	BuyerName    string `json:"buyer_name"`
	BuyerEmail   string `json:"buyer_email"`
	BuyerMessage string `json:"buyer_message"`
}

// ImpactStats aggregates a user's self-reported environmental impact.
type ImpactStats struct {
	CO2Saved       float64 `json:"co2_saved"`
	WaterSaved     float64 `json:"water_saved"`
	WasteSaved     float64 `json:"waste_saved"`
	ItemsRecycled  int     `json:"items_recycled"`
	ItemsPurchased int     `json:"items_purchased"`
}
