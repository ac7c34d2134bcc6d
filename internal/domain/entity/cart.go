package entity

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a cart. UnitPrice is snapshotted at the
// moment the product is added (sale price if it was on sale) and is never
// recomputed from the catalog afterwards, so a later price change on the
// product does not silently reprice an existing cart.
type CartLine struct {
	ProductID string          `json:"productId"`          // Reference to the catalog product.
	Name      string          `json:"name"`               // Display name captured at add time.
	ImageURL  string          `json:"imageUrl,omitempty"` // Cover image captured at add time.
	UnitPrice decimal.Decimal `json:"price"`              // Price snapshot at add time.
	Quantity  int             `json:"quantity"`           // Units of this product, always >= 1.
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered collection of lines belonging to exactly one identity.
// The subtotal is always derived from the lines and never stored, so it
// cannot drift from them.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Subtotal recomputes the sum of all line totals on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines {
		sum = sum.Add(line.LineTotal())
	}

	return sum
}

// IndexOf returns the position of the line for productID, or -1 when absent.
func (c *Cart) IndexOf(productID string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}

	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
