// Package schema holds the Avro contracts of the events the storefront
// publishes and the serdes that frame them for the schema registry.
package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}

// SchemaIdentifier resolves the registry id of a schema under a subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject string, avroSchemaText string) (int, error)
}

type SchemaRegistryClient interface {
	CreateSchema(context.Context, string, sr.Schema) (sr.SubjectSchema, error)
}

// SchemaCreater registers the schema, or finds the already registered
// one, and returns its id.
type SchemaCreater struct {
	cl SchemaRegistryClient
}

func NewSchemaCreater(cl SchemaRegistryClient) SchemaCreater {
	return SchemaCreater{cl}
}

func (sc SchemaCreater) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"

	if sc.cl == nil {
		return 0, fmt.Errorf("%s: %w", op, errors.New("registry client is nil"))
	}

	ss, err := sc.cl.CreateSchema(ctx, subject, sr.Schema{
		Type:   sr.TypeAvro,
		Schema: avroSchemaText,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
