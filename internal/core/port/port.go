package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
)

// Inbound ports.

type CatalogViewer interface {
	ViewCatalog(context.Context, domain.Shopper, catalog.Query) ([]catalog.CategoryView, error)
	ViewProduct(ctx context.Context, id int64) (catalog.ProductView, error)
}

type CartManager interface {
	AddToCart(ctx context.Context, s domain.Shopper, code int64, amount int) error
	RemoveFromCart(ctx context.Context, s domain.Shopper, code int64) error
	GetCart(context.Context, domain.Shopper) (domain.CartSummary, error)
	Checkout(context.Context, domain.Shopper) error
}

type CustomerManager interface {
	SaveCustomer(context.Context, domain.Customer) (domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)
}

type ProductCreator interface {
	CreateProduct(ctx context.Context, token string, p domain.NewProduct) error
}

// Outbound ports.

type CatalogSource interface {
	FetchCatalog(context.Context) (domain.Catalog, error)
	FetchProduct(ctx context.Context, id int64) (domain.Product, error)
	FetchProducts(ctx context.Context, codes []int64) ([]domain.Product, error)
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, token string, o domain.Order) error
}

type CustomerGateway interface {
	CreateCustomer(context.Context, domain.Customer) (domain.Customer, error)
	UpdateCustomer(context.Context, domain.Customer) (domain.Customer, error)
	FetchCustomer(ctx context.Context, id int64) (domain.Customer, error)
}

type ProductPublisher interface {
	PublishProduct(ctx context.Context, token string, p domain.NewProduct) error
}

// KeyValueStore persists opaque client state. Get returns
// [domain.ErrNotFound] for an absent key.
//
// Update applies fn to the current value atomically with respect to other
// Update calls on the same key. fn receives nil for an absent key; an empty
// result removes the key. An error returned by fn aborts the update.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

type CatalogSearchProducer interface {
	ProduceSearch(context.Context, domain.CatalogSearchEvent) error
}
