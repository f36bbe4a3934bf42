package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

type MockRegistryClient struct {
	mock.Mock
}

func (c *MockRegistryClient) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := c.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

const subject = "catalog_searches-value"

func TestSerdeCatalogSearchV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogSearchV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogSearchV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogSearchV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.CatalogSearchSchemaTextV1).
			Return(0, errors.New("registry unavailable"))

		_, err := schema.NewSerdeCatalogSearchV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.Error(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.CatalogSearchSchemaTextV1).
			Return(7, nil)

		serde, err := schema.NewSerdeCatalogSearchV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		in := schema.CatalogSearchV1{
			EventID:    "evt-1",
			CustomerID: "5",
			FilterText: "cafe",
			Sort:       "lowestPrice",
			Groups:     2,
			Matches:    3,
			OccurredAt: time.UnixMilli(1_700_000_000_000).UTC(),
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)

		// magic byte then the big endian schema id
		require.Greater(t, len(data), 5)
		assert.Equal(t, []byte{0, 0, 0, 0, 7}, data[:5])

		var out schema.CatalogSearchV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.EventID, out.EventID)
		assert.Equal(t, in.FilterText, out.FilterText)
		assert.Equal(t, in.Matches, out.Matches)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
	})
}

func TestSchemaCreater(t *testing.T) {
	cl := new(MockRegistryClient)
	cl.On("CreateSchema", t.Context(), subject, sr.Schema{
		Type:   sr.TypeAvro,
		Schema: schema.CatalogSearchSchemaTextV1,
	}).Return(sr.SubjectSchema{ID: 12}, nil)

	id, err := schema.NewSchemaCreater(cl).DetermineID(
		t.Context(), subject, schema.CatalogSearchSchemaTextV1,
	)
	require.NoError(t, err)
	assert.Equal(t, 12, id)
}

func TestCatalogSearchV1Avro(t *testing.T) {
	assert.NotPanics(t, func() {
		schema.CatalogSearchV1Avro()
	})
}
