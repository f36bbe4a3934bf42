package domain

type (
	Product struct {
		ID              int64
		Name            string
		Price           float64
		Image           string
		CategoryID      string
		CategoryName    string
		Description     string
		InventoryAmount int
		Comments        []Comment
	}

	Comment struct {
		Rating int
		Text   string
	}
)

// CategoryGroups maps a category id to the ordered products of that category.
type CategoryGroups map[string][]Product

// CategoryNames maps a category id to its display name.
type CategoryNames map[string]string

type Catalog struct {
	Groups CategoryGroups
	Names  CategoryNames
}

type NewProduct struct {
	Name            string  `validate:"required"`
	Price           float64 `validate:"gt=0"`
	Description     string  `validate:"required"`
	InventoryAmount int     `validate:"gte=0"`
}

type SortDirective string

const (
	SortNone         SortDirective = ""
	SortLowestPrice  SortDirective = "lowestPrice"
	SortBiggestPrice SortDirective = "biggestPrice"
)

// ParseSortDirective treats anything unknown as SortNone.
func ParseSortDirective(s string) SortDirective {
	switch d := SortDirective(s); d {
	case SortLowestPrice, SortBiggestPrice:
		return d
	default:
		return SortNone
	}
}
