package catalog

import (
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ApplyFilter returns a new grouping holding, for every input category,
// the products whose normalized name contains the normalized filter text.
//
// Every input key is kept even when its list ends up empty. Products
// without a name never match. The input is left untouched.
func ApplyFilter(
	groups domain.CategoryGroups, filterText string,
) domain.CategoryGroups {
	needle := Normalize(filterText)

	filtered := make(domain.CategoryGroups, len(groups))
	for categoryID, products := range groups {
		matched := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if nameMatches(p.Name, needle) {
				matched = append(matched, p)
			}
		}
		filtered[categoryID] = matched
	}
	return filtered
}

func nameMatches(name, needle string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(Normalize(name), needle)
}

// CountProducts returns the number of products over all groups.
func CountProducts(groups domain.CategoryGroups) (n int) {
	for _, products := range groups {
		n += len(products)
	}
	return n
}
