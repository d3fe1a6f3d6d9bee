package catalog

import (
	"sort"
	"strings"
)

type SortMode string

const (
	SortFeatured   SortMode = "featured"
	SortPriceAsc   SortMode = "price_asc"
	SortPriceDesc  SortMode = "price_desc"
	SortRatingDesc SortMode = "rating_desc"
)

func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return SortMode(s), true
	case "":
		return SortFeatured, true
	}
	return "", false
}

// Criteria is the full filter/sort input to the derivation pipeline. The
// zero value of MaxPrice means "no ceiling".
type Criteria struct {
	Query     string
	Category  Category
	MaxPrice  float64
	PrimeOnly bool
	Sort      SortMode
}

// Apply derives the displayed result list: filter, then a stable sort per
// the selected mode. Pure: the input slice is never reordered or mutated,
// and the result is always a subset of it.
func (c Criteria) Apply(products []Product) []Product {
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !c.matches(p, q) {
			continue
		}
		out = append(out, p)
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default: // SortFeatured
		sort.SliceStable(out, func(i, j int) bool {
			return featuredScore(out[i]) > featuredScore(out[j])
		})
	}

	return out
}

func (c Criteria) matches(p Product, q string) bool {
	if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
		return false
	}
	if c.PrimeOnly && !p.Prime {
		return false
	}
	if c.MaxPrice > 0 && p.Price > c.MaxPrice {
		return false
	}
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q)
}

// featuredScore rewards rating and availability. The stock bonus is capped
// at 50 units so deep stock cannot outrank a better-rated product.
func featuredScore(p Product) float64 {
	stock := p.Stock
	if stock < 0 {
		stock = 0
	}
	if stock > 50 {
		stock = 50
	}
	return p.Rating*10 + float64(stock)/10
}
