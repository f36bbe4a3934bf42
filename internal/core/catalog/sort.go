package catalog

import (
	"cmp"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// SortProducts returns a sorted copy of products. Equal prices keep their
// relative input order. The caller's slice is never reordered.
func SortProducts(
	products []domain.Product, directive domain.SortDirective,
) []domain.Product {
	sorted := slices.Clone(products)

	switch directive {
	case domain.SortLowestPrice:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortBiggestPrice:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}

	if sorted == nil {
		return []domain.Product{}
	}
	return sorted
}

// SortGroups sorts every group on its own. Products never move between
// categories.
func SortGroups(
	groups domain.CategoryGroups, directive domain.SortDirective,
) domain.CategoryGroups {
	sorted := make(domain.CategoryGroups, len(groups))
	for categoryID, products := range groups {
		sorted[categoryID] = SortProducts(products, directive)
	}
	return sorted
}
