package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

const cartKeyPrefix = "customerCart:"

// cartEntryRecord is the persisted shape of a cart entry,
// {"<code>": {"code": 1, "amount": 2}}.
type cartEntryRecord struct {
	Code   int64 `json:"code"`
	Amount int   `json:"amount"`
}

func cartKey(customerID string) string {
	return cartKeyPrefix + customerID
}

func (s Service) AddToCart(
	ctx context.Context, shopper domain.Shopper, code int64, amount int,
) error {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := cartOwner(shopper); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if code <= 0 {
		return fmt.Errorf("%s: %w: product code %d", op, domain.ErrInvalidForm, code)
	}

	if amount < 1 {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidAmount)
	}

	err := s.updateCart(ctx, shopper.CustomerID, func(cart domain.Cart) error {
		cart[code] = domain.CartEntry{Code: code, Amount: amount}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) RemoveFromCart(
	ctx context.Context, shopper domain.Shopper, code int64,
) error {
	const op = "Service.RemoveFromCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := cartOwner(shopper); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.updateCart(ctx, shopper.CustomerID, func(cart domain.Cart) error {
		if _, ok := cart[code]; !ok {
			return fmt.Errorf("%w: product code %d", domain.ErrNotFound, code)
		}
		delete(cart, code)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) GetCart(
	ctx context.Context, shopper domain.Shopper,
) (domain.CartSummary, error) {
	const op = "Service.GetCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := cartOwner(shopper); err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.loadCart(ctx, shopper.CustomerID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(cart) == 0 {
		return domain.CartSummary{Lines: []domain.CartLine{}}, nil
	}

	codes := slices.Sorted(maps.Keys(cart))
	products, err := s.catalogSource.FetchProducts(ctx, codes)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return summarizeCart(cart, products), nil
}

func (s Service) Checkout(ctx context.Context, shopper domain.Shopper) error {
	const op = "Service.Checkout"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	customerID, err := cartOwner(shopper)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.loadCart(ctx, shopper.CustomerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(cart) == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	order := domain.Order{CustomerID: customerID}
	for _, code := range slices.Sorted(maps.Keys(cart)) {
		order.Products = append(order.Products, cart[code])
	}

	if err := s.orderSubmitter.SubmitOrder(ctx, shopper.Token, order); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// the order is placed at this point, a stale cart is only logged
	if err := s.store.Remove(ctx, cartKey(shopper.CustomerID)); err != nil {
		log.Error("failed to clear cart", "customer", shopper.CustomerID, "err", err)
	}

	log.Info("order placed",
		"customer", shopper.CustomerID, "nProducts", len(order.Products))
	return nil
}

// cartOwner returns the numeric id of a shopper allowed to hold a cart.
// An id that is not a positive integer is [domain.ErrInvalidForm].
func cartOwner(shopper domain.Shopper) (int64, error) {
	if !shopper.Authorized() {
		return 0, domain.ErrUnauthorized
	}

	id, err := strconv.ParseInt(shopper.CustomerID, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf(
			"%w: customer id %q", domain.ErrInvalidForm, shopper.CustomerID,
		)
	}
	return id, nil
}

func (s Service) loadCart(
	ctx context.Context, customerID string,
) (domain.Cart, error) {
	const op = "Service.loadCart"

	data, err := s.store.Get(ctx, cartKey(customerID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Cart{}, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return storedCart(customerID, data), nil
}

// updateCart applies fn to the stored cart under the store's per key
// atomicity. The key is removed once the last entry is gone. An error
// from fn is returned unwrapped and leaves the stored cart as it was.
func (s Service) updateCart(
	ctx context.Context, customerID string, fn func(domain.Cart) error,
) error {
	const op = "Service.updateCart"

	var fnErr error
	err := s.store.Update(ctx, cartKey(customerID), func(current []byte) ([]byte, error) {
		cart := storedCart(customerID, current)
		if fnErr = fn(cart); fnErr != nil {
			return nil, fnErr
		}
		if len(cart) == 0 {
			return nil, nil
		}
		return encodeCart(cart)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return nil
}

// storedCart treats absent and malformed persisted data as an empty cart.
func storedCart(customerID string, data []byte) domain.Cart {
	if len(data) == 0 {
		return domain.Cart{}
	}

	cart, err := decodeCart(data)
	if err != nil {
		slog.Warn("malformed cart, treated as empty",
			"op", "Service.storedCart", "customer", customerID, "err", err)
		return domain.Cart{}
	}
	return cart
}

func encodeCart(cart domain.Cart) ([]byte, error) {
	records := make(map[string]cartEntryRecord, len(cart))
	for code, e := range cart {
		records[strconv.FormatInt(code, 10)] = cartEntryRecord{
			Code:   e.Code,
			Amount: e.Amount,
		}
	}
	return json.Marshal(records)
}

func decodeCart(data []byte) (domain.Cart, error) {
	var records map[string]cartEntryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	cart := make(domain.Cart, len(records))
	for key, r := range records {
		code, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("product code %q: %w", key, err)
		}
		if r.Amount < 1 {
			return nil, fmt.Errorf("product code %d: %w", code, domain.ErrInvalidAmount)
		}
		cart[code] = domain.CartEntry{Code: code, Amount: r.Amount}
	}
	return cart, nil
}

// summarizeCart joins cart entries with product data. Products the backend
// did not return are left out.
func summarizeCart(cart domain.Cart, products []domain.Product) domain.CartSummary {
	summary := domain.CartSummary{
		Lines: make([]domain.CartLine, 0, len(products)),
		Items: len(cart),
	}

	total := decimal.Zero
	for _, p := range products {
		entry, ok := cart[p.ID]
		if !ok {
			continue
		}

		price := decimal.NewFromFloat(p.Price)
		lineTotal := price.Mul(decimal.NewFromInt(int64(entry.Amount)))
		total = total.Add(lineTotal)

		priceLabel := catalog.FormatPrice(p.Price)
		summary.Lines = append(summary.Lines, domain.CartLine{
			Code:            p.ID,
			Name:            p.Name,
			Amount:          entry.Amount,
			PriceLabel:      priceLabel,
			AmountLabel:     fmt.Sprintf("%d x %s", entry.Amount, priceLabel),
			LineTotalLabel:  catalog.FormatTotal(lineTotal),
			LineTotalAmount: lineTotal.InexactFloat64(),
		})
	}

	summary.Total = total.InexactFloat64()
	summary.TotalLabel = catalog.FormatTotal(total)
	return summary
}
