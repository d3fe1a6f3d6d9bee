// Package order defines the immutable order records produced by checkout.
package order

import "time"

// StatusProcessing is the only modeled status; orders never transition.
const StatusProcessing = "Processing"

// Line captures a purchased product as of checkout time. Title and price
// are snapshots, deliberately decoupled from the live catalog so deleting a
// product never corrupts order history.
type Line struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	Items     []Line    `json:"items"`
	UserEmail string    `json:"userEmail"`
}

// Prepend is the only collection operation: newest order first.
func Prepend(orders []Order, o Order) []Order {
	return append([]Order{o}, orders...)
}
