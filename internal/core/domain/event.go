package domain

import "time"

type CatalogSearchEvent struct {
	EventID    string
	CustomerID string
	FilterText string
	Sort       SortDirective
	Groups     int
	Matches    int
	OccurredAt time.Time
}
