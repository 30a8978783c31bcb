package contract

import (
	"context"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	Update(ctx context.Context, tenant *entity.Tenant) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tenant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tenant, error)
}
