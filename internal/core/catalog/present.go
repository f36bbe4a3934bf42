// Package catalog turns a catalog snapshot into the category views shown
// to shoppers. Every function here is pure and never fails.
package catalog

import (
	"cmp"
	"maps"
	"slices"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	CategoryView struct {
		ID       string
		Name     string
		Products []ProductView
	}

	ProductView struct {
		ID              int64
		Name            string
		Price           float64
		PriceLabel      string
		Image           string
		CategoryID      string
		CategoryName    string
		Description     string
		InventoryAmount int
		Rating          *RatingBadge
		Comments        []domain.Comment
	}

	// RatingBadge is absent for products without comments.
	RatingBadge struct {
		Average float64
		Label   string
		Stars   int
	}
)

type Query struct {
	Filter string
	Sort   domain.SortDirective
}

// Present runs the whole pipeline over a catalog snapshot: filter, sort
// inside each category, drop empty categories, build view models.
func Present(c domain.Catalog, q Query) []CategoryView {
	filtered := ApplyFilter(c.Groups, q.Filter)
	sorted := SortGroups(filtered, q.Sort)
	return VisibleGroups(c.Names, sorted)
}

// VisibleGroups turns non-empty groups into views ordered by category id.
func VisibleGroups(
	names domain.CategoryNames, groups domain.CategoryGroups,
) []CategoryView {
	ids := slices.SortedFunc(maps.Keys(groups), compareCategoryIDs)

	views := make([]CategoryView, 0, len(ids))
	for _, id := range ids {
		products := groups[id]
		if len(products) == 0 {
			continue
		}

		v := CategoryView{
			ID:       id,
			Name:     names[id],
			Products: make([]ProductView, len(products)),
		}
		for i, p := range products {
			v.Products[i] = PresentProduct(p)
		}
		views = append(views, v)
	}
	return views
}

// PresentProduct builds the view model of a single product.
func PresentProduct(p domain.Product) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		PriceLabel:      FormatPrice(p.Price),
		Image:           p.Image,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		Description:     p.Description,
		InventoryAmount: p.InventoryAmount,
		Rating:          ratingBadge(p.Comments),
		Comments:        slices.Clone(p.Comments),
	}
}

func ratingBadge(comments []domain.Comment) *RatingBadge {
	avg, ok := AverageRating(comments)
	if !ok {
		return nil
	}
	return &RatingBadge{
		Average: avg,
		Label:   FormatRating(avg),
		Stars:   StarsForRating(avg),
	}
}

// Numeric ids go first in ascending order, the rest follow lexically.
func compareCategoryIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
