package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CatalogSearchSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog_search",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "customer_id", "type": "string"},
		{"name": "filter_text", "type": "string"},
		{"name": "sort", "type": "string"},
		{"name": "groups", "type": "int"},
		{"name": "matches", "type": "int"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// CatalogSearchV1 records a filtered catalog page view.
type CatalogSearchV1 struct {
	EventID    string    `avro:"event_id"`
	CustomerID string    `avro:"customer_id"`
	FilterText string    `avro:"filter_text"`
	Sort       string    `avro:"sort"`
	Groups     int       `avro:"groups"`
	Matches    int       `avro:"matches"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// CatalogSearchV1Avro panics on a malformed schema text.
func CatalogSearchV1Avro() avro.Schema {
	return avro.MustParse(CatalogSearchSchemaTextV1)
}
