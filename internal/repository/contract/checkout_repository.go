package contract

import (
	"context"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
)

type CheckoutRepository interface {
	Create(ctx context.Context, checkout *entity.Checkout) error
	Update(ctx context.Context, checkout *entity.Checkout) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Checkout, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Checkout, error)
}
