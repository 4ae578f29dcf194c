package product

// Product is a catalog entry managed through the admin screens.
// Photo holds the original filename of the uploaded image, empty when none.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Photo string
}

// DefaultPageSize is the fixed page size of the listing screen.
const DefaultPageSize = 10

type ListFilter struct {
	Page    int
	PerPage int
}
