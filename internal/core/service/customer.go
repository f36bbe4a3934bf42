package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// SaveCustomer creates the customer when it has no id yet, otherwise
// updates it. The form is validated before the backend is called.
func (s Service) SaveCustomer(
	ctx context.Context, c domain.Customer,
) (domain.Customer, error) {
	const op = "Service.SaveCustomer"

	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.validate.StructCtx(ctx, c); err != nil {
		return domain.Customer{}, fmt.Errorf(
			"%s: %w: %w", op, domain.ErrInvalidForm, err,
		)
	}

	var (
		saved domain.Customer
		err   error
	)
	if c.ID == 0 {
		saved, err = s.customerGateway.CreateCustomer(ctx, c)
	} else {
		saved, err = s.customerGateway.UpdateCustomer(ctx, c)
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (s Service) GetCustomer(
	ctx context.Context, id int64,
) (domain.Customer, error) {
	const op = "Service.GetCustomer"

	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	if id <= 0 {
		return domain.Customer{}, fmt.Errorf(
			"%s: %w: customer id %d", op, domain.ErrInvalidForm, id,
		)
	}

	c, err := s.customerGateway.FetchCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s Service) CreateProduct(
	ctx context.Context, token string, p domain.NewProduct,
) error {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if token == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	if err := s.validate.StructCtx(ctx, p); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidForm, err)
	}

	if err := s.productPublisher.PublishProduct(ctx, token, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
