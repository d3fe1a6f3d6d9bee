// Package cart holds the shopping cart: a quantity map keyed by product id.
// The single invariant is that every stored quantity is a strictly positive
// integer; an entry that would hit zero is removed instead.
package cart

import (
	"DragonMart/internal/catalog"
)

type Cart struct {
	qty map[string]int
}

func New() *Cart {
	return &Cart{qty: map[string]int{}}
}

// FromStored rebuilds a cart from a persisted quantity map, dropping any
// entry that violates the positivity invariant.
func FromStored(m map[string]int) *Cart {
	c := New()
	for id, n := range m {
		if id == "" || n < 1 {
			continue
		}
		c.qty[id] = n
	}
	return c
}

func (c *Cart) Add(productID string)       { c.qty[productID]++ }
func (c *Cart) Increment(productID string) { c.qty[productID]++ }

func (c *Cart) Decrement(productID string) {
	n := c.qty[productID] - 1
	if n <= 0 {
		delete(c.qty, productID)
		return
	}
	c.qty[productID] = n
}

func (c *Cart) Remove(productID string) { delete(c.qty, productID) }

func (c *Cart) Clear() { c.qty = map[string]int{} }

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, n := range c.qty {
		total += n
	}
	return total
}

// Quantities returns a snapshot of the underlying map for persistence.
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.qty))
	for id, n := range c.qty {
		out[id] = n
	}
	return out
}

type LineItem struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// LineItems joins the quantity map against the given catalog snapshot,
// keeping catalog order. Entries whose product no longer exists are left
// out of the view, not treated as an error.
func (c *Cart) LineItems(products []catalog.Product) []LineItem {
	out := make([]LineItem, 0, len(c.qty))
	for _, p := range products {
		if n, ok := c.qty[p.ID]; ok {
			out = append(out, LineItem{Product: p, Qty: n})
		}
	}
	return out
}

// Subtotal prices the cart against the given catalog snapshot.
func (c *Cart) Subtotal(products []catalog.Product) float64 {
	var sum float64
	for _, li := range c.LineItems(products) {
		sum += li.Product.Price * float64(li.Qty)
	}
	return sum
}
