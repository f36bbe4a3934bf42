package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CatalogSearchProducer = (*CatalogSearchProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogSearchProducer publishes [domain.CatalogSearchEvent] keyed by
// customer, so one customer's searches stay ordered within a partition.
type CatalogSearchProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCatalogSearchProducer(
	opts ...ProducerOpt,
) (CatalogSearchProducer, error) {
	const op = "NewCatalogSearchProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogSearchProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CatalogSearchProducer"
	return CatalogSearchProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CatalogSearchProducer) Close() {
	p.producer.close()
}

func (p CatalogSearchProducer) ProduceSearch(
	ctx context.Context, evt domain.CatalogSearchEvent,
) error {
	const op = "ProduceSearch"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p CatalogSearchProducer) createRecord(
	evt domain.CatalogSearchEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := catalogSearchToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	key := s.CustomerID
	if key == "" {
		key = s.EventID
	}
	return &kgo.Record{Key: []byte(key), Value: b}, nil
}

func catalogSearchToSchemaV1(v domain.CatalogSearchEvent) schema.CatalogSearchV1 {
	return schema.CatalogSearchV1{
		EventID:    v.EventID,
		CustomerID: v.CustomerID,
		FilterText: v.FilterText,
		Sort:       string(v.Sort),
		Groups:     v.Groups,
		Matches:    v.Matches,
		OccurredAt: v.OccurredAt,
	}
}
