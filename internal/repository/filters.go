package repository

type ListingFilter struct {
	UserID    string
	WasteType string
}

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price-low"
	SortPriceHigh ProductSort = "price-high"
	SortRating    ProductSort = "rating"
)

func (s ProductSort) orderClause() string {
	switch s {
	case SortPriceLow:
		return "price asc"
	case SortPriceHigh:
		return "price desc"
	case SortRating:
		return "rating desc"
	default:
		return "created_at desc"
	}
}

type ProductFilter struct {
	Category string
	Search   string
	Sort     ProductSort
	Offset   int
	Limit    int
}
