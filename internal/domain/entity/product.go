package entity

import (
	"github.com/shopspring/decimal"
)

// Category groups products in the storefront catalog.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Product is a catalog item as served by the remote commerce API.
// Prices are decimal to keep money math exact on the client.
type Product struct {
	ID          string          `json:"id"`                  // Server-issued product identifier.
	Name        string          `json:"name"`                // Display name of the piece.
	Description string          `json:"description"`         // Marketing description.
	Price       decimal.Decimal `json:"price"`               // Regular list price.
	OnSale      bool            `json:"isOnSale"`            // Whether the sale price currently applies.
	SalePrice   decimal.Decimal `json:"salePrice"`           // Discounted price, meaningful only while OnSale.
	Stock       int             `json:"stock"`               // Units available; zero renders as out of stock.
	Images      []string        `json:"images"`              // Gallery image references, first one is the cover.
	CategoryID  string          `json:"categoryId"`          // Reference to the owning Category.
	Material    string          `json:"material,omitempty"`  // e.g. "18k gold", "sterling silver".
	Gemstone    string          `json:"gemstone,omitempty"`  // e.g. "diamond", "sapphire".
}

// EffectivePrice returns the price a buyer pays right now: the sale price
// while the product is on sale, the list price otherwise. Cart lines snapshot
// this value at add time and never re-read it from the catalog.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnSale {
		return p.SalePrice
	}

	return p.Price
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
