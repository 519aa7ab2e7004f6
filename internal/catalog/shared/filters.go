package shared

// Sort keys accepted by the product listing.
const (
	SortName  = "name"
	SortPrice = "price"
	SortStock = "stock"
)

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page   int
	Limit  int
	Search string
	SortBy string

	CategoryID *string
	IsActive   *bool
}
