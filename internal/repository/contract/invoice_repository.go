package contract

import (
	"context"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
)

// InvoiceRepository is append-only by design: there is no Delete, and Update
// exists solely so the webhook path can stamp approval on a pending row.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
}
