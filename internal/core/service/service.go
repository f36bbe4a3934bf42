package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogViewer = (*Service)(nil)
var _ port.CartManager = (*Service)(nil)
var _ port.CustomerManager = (*Service)(nil)
var _ port.ProductCreator = (*Service)(nil)

type Service struct {
	catalogSource    port.CatalogSource
	orderSubmitter   port.OrderSubmitter
	customerGateway  port.CustomerGateway
	productPublisher port.ProductPublisher
	store            port.KeyValueStore
	searchProducer   port.CatalogSearchProducer
	validate         *validator.Validate
	now              func() time.Time
	reportTimeout    time.Duration
}

const defaultSearchReportTimeout = 5 * time.Second

type Opt func(*Service)

// SearchReportTimeoutOpt bounds a single catalog search report.
func SearchReportTimeoutOpt(d time.Duration) Opt {
	return func(s *Service) {
		if d > 0 {
			s.reportTimeout = d
		}
	}
}

// New creates the storefront service. searchProducer may be nil, then
// catalog searches are not reported.
func New(
	catalogSource port.CatalogSource,
	orderSubmitter port.OrderSubmitter,
	customerGateway port.CustomerGateway,
	productPublisher port.ProductPublisher,
	store port.KeyValueStore,
	searchProducer port.CatalogSearchProducer,
	opts ...Opt,
) Service {
	s := Service{
		catalogSource:    catalogSource,
		orderSubmitter:   orderSubmitter,
		customerGateway:  customerGateway,
		productPublisher: productPublisher,
		store:            store,
		searchProducer:   searchProducer,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		now:              time.Now,
		reportTimeout:    defaultSearchReportTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Service) ViewCatalog(
	ctx context.Context, shopper domain.Shopper, q catalog.Query,
) ([]catalog.CategoryView, error) {
	const op = "Service.ViewCatalog"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := s.catalogSource.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := catalog.Present(c, q)
	s.reportSearch(ctx, shopper, q, views)
	return views, nil
}

func (s Service) ViewProduct(
	ctx context.Context, id int64,
) (catalog.ProductView, error) {
	const op = "Service.ViewProduct"

	if err := ctx.Err(); err != nil {
		return catalog.ProductView{}, fmt.Errorf("%s: %w", op, err)
	}

	if id <= 0 {
		return catalog.ProductView{}, fmt.Errorf(
			"%s: %w: product id %d", op, domain.ErrInvalidForm, id,
		)
	}

	p, err := s.catalogSource.FetchProduct(ctx, id)
	if err != nil {
		return catalog.ProductView{}, fmt.Errorf("%s: %w", op, err)
	}
	return catalog.PresentProduct(p), nil
}

// reportSearch is best effort: the event is produced in the background on
// a context detached from the request and bounded by reportTimeout, so a
// slow or failed emit never delays or fails the page.
func (s Service) reportSearch(
	ctx context.Context,
	shopper domain.Shopper,
	q catalog.Query,
	views []catalog.CategoryView,
) {
	const op = "Service.reportSearch"

	if s.searchProducer == nil {
		return
	}

	filterText := catalog.Normalize(q.Filter)
	if filterText == "" {
		return
	}

	var matches int
	for _, v := range views {
		matches += len(v.Products)
	}

	evt := domain.CatalogSearchEvent{
		EventID:    uuid.NewString(),
		CustomerID: shopper.CustomerID,
		FilterText: filterText,
		Sort:       q.Sort,
		Groups:     len(views),
		Matches:    matches,
		OccurredAt: s.now().UTC(),
	}

	reportCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), s.reportTimeout,
	)
	go func() {
		defer cancel()
		if err := s.searchProducer.ProduceSearch(reportCtx, evt); err != nil {
			slog.Warn("failed to report catalog search",
				"op", op, "eventID", evt.EventID, "err", err)
		}
	}()
}
