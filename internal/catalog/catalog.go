package catalog

import "github.com/shopspring/decimal"

// Item represents a product as served by the public catalog API.
// The cart treats items as immutable and never writes catalog fields back.
// JSON tags match the catalog API's wire names.
type Item struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating holds the catalog's aggregate review score for an item.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
