package domain

// Product is a raw catalog item exactly as the upstream demo API returns it.
// Items are immutable after fetch; everything display-specific is added by
// the enrichment pass.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// PromoBadge is one entry of the fixed badge catalog (label, color class and
// icon name as the storefront renders them).
type PromoBadge struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	IconName string `json:"iconName"`
}

// EnrichedProduct is a Product after the one-time enrichment pass. Once an id
// has been persisted, its OnSale, OldPrice, Price and PromoBadge fields never
// change again.
type EnrichedProduct struct {
	Product
	OnSale     bool        `json:"onSale,omitempty"`
	OldPrice   float64     `json:"oldPrice,omitempty"`
	PromoBadge *PromoBadge `json:"promoBadge,omitempty"`
}
