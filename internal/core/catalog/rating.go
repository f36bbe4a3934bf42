package catalog

import "github.com/niksmo/storefront/internal/core/domain"

// AverageRating is the mean of the comment ratings. ok is false when there
// are no comments: such a product has no rating at all, not a zero one.
func AverageRating(comments []domain.Comment) (avg float64, ok bool) {
	if len(comments) == 0 {
		return 0, false
	}

	var sum int
	for _, c := range comments {
		sum += c.Rating
	}
	return float64(sum) / float64(len(comments)), true
}

// StarsForRating buckets an average rating into 1..5 stars.
//
// The buckets are checked in order and the first match wins. Values in the
// gaps between buckets (e.g. 3.05) and negative values get 5 stars.
func StarsForRating(avg float64) int {
	switch {
	case avg >= 0 && avg <= 3:
		return 1
	case avg >= 3.1 && avg <= 5:
		return 2
	case avg >= 5.1 && avg <= 7:
		return 3
	case avg >= 7.1 && avg <= 8:
		return 4
	default:
		return 5
	}
}
