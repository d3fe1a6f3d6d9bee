// Package catalog owns the product collection and the pure query pipeline
// that turns it into a displayed result list.
package catalog

type Category string

const (
	// CategoryAll is a filter sentinel, never a product category.
	CategoryAll Category = "All"

	CategoryElectronics Category = "Electronics"
	CategoryHome        Category = "Home"
	CategoryFashion     Category = "Fashion"
	CategoryBeauty      Category = "Beauty"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
	CategoryAutoParts   Category = "Auto Spare Parts"
	CategoryToys        Category = "Toys and Games"
)

// Categories lists every assignable product category, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryHome,
	CategoryFashion,
	CategoryBeauty,
	CategorySports,
	CategoryBooks,
	CategoryAutoParts,
	CategoryToys,
}

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Prime       bool     `json:"prime"`
	Stock       int      `json:"stock"`
	Image       string   `json:"img"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
	Description string   `json:"desc"`
}

// valid reports whether a stored row is usable. Rows failing this are
// dropped at the load boundary instead of poisoning the catalog.
func (p Product) valid() bool {
	switch {
	case p.ID == "" || p.Title == "":
		return false
	case !ValidCategory(p.Category):
		return false
	case p.Price < 0 || p.Stock < 0 || p.Reviews < 0:
		return false
	case p.Rating < 0 || p.Rating > 5:
		return false
	}
	return true
}
