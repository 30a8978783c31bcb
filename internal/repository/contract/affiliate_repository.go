package contract

import (
	"context"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AffiliateRepository interface {
	CreateLink(ctx context.Context, link *entity.AffiliateLink) error
	FindOneLink(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateLink, error)

	CreateSale(ctx context.Context, sale *entity.AffiliateSale) error
	UpdateSale(ctx context.Context, sale *entity.AffiliateSale) error
	FindOneSale(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateSale, error)
	FindAllSales(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateSale, error)

	CreateWithdrawal(ctx context.Context, withdrawal *entity.AffiliateWithdrawal) error
	FindAllWithdrawals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateWithdrawal, error)

	// Balance aggregates for the affiliate portal
	SumSalesByStatus(ctx context.Context, linkId uuid.UUID, status entity.SaleStatus) (int64, error)
	SumWithdrawals(ctx context.Context, linkId uuid.UUID) (int64, error)
}
