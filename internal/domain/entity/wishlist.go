package entity

// Wishlist is the in-memory mirror of the server-side saved-items set for
// the current identity, keyed by product ID so membership tests are O(1).
// The authoritative copy lives on the remote API; this mirror is replaced
// wholesale on identity change and flipped optimistically on toggle.
type Wishlist map[string]Product

// Has reports membership for a product ID.
func (w Wishlist) Has(productID string) bool {
	_, ok := w[productID]

	return ok
}

// Put adds or replaces the product in the set.
func (w Wishlist) Put(p Product) {
	w[p.ID] = p
}

// Remove drops the product from the set if present.
func (w Wishlist) Remove(productID string) {
	delete(w, productID)
}

// Items returns the products in the set in unspecified order.
func (w Wishlist) Items() []Product {
	items := make([]Product, 0, len(w))
	for _, p := range w {
		items = append(items, p)
	}

	return items
}
