package implementation

import (
	"context"
	"errors"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/mapper"
	"autowebinar-be/internal/model"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AffiliateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AffiliateMapper
}

func NewAffiliateRepository(db *gorm.DB) contract.AffiliateRepository {
	return &AffiliateRepositoryImpl{
		db:     db,
		mapper: mapper.NewAffiliateMapper(),
	}
}

func (r *AffiliateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AffiliateRepositoryImpl) CreateLink(ctx context.Context, link *entity.AffiliateLink) error {
	m := r.mapper.LinkToModel(link)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.LinkToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) FindOneLink(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateLink, error) {
	var m model.AffiliateLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.LinkToEntity(&m), nil
}

func (r *AffiliateRepositoryImpl) CreateSale(ctx context.Context, sale *entity.AffiliateSale) error {
	m := r.mapper.SaleToModel(sale)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sale = *r.mapper.SaleToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) UpdateSale(ctx context.Context, sale *entity.AffiliateSale) error {
	m := r.mapper.SaleToModel(sale)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*sale = *r.mapper.SaleToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) FindOneSale(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateSale, error) {
	var m model.AffiliateSale
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SaleToEntity(&m), nil
}

func (r *AffiliateRepositoryImpl) FindAllSales(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateSale, error) {
	var models []*model.AffiliateSale
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AffiliateSale, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SaleToEntity(m)
	}
	return entities, nil
}

func (r *AffiliateRepositoryImpl) CreateWithdrawal(ctx context.Context, withdrawal *entity.AffiliateWithdrawal) error {
	m := r.mapper.WithdrawalToModel(withdrawal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*withdrawal = *r.mapper.WithdrawalToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) FindAllWithdrawals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateWithdrawal, error) {
	var models []*model.AffiliateWithdrawal
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AffiliateWithdrawal, len(models))
	for i, m := range models {
		entities[i] = r.mapper.WithdrawalToEntity(m)
	}
	return entities, nil
}

func (r *AffiliateRepositoryImpl) SumSalesByStatus(ctx context.Context, linkId uuid.UUID, status entity.SaleStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AffiliateSale{}).
		Where("link_id = ? AND status = ?", linkId, string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AffiliateRepositoryImpl) SumWithdrawals(ctx context.Context, linkId uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AffiliateWithdrawal{}).
		Where("link_id = ? AND status <> ?", linkId, string(entity.WithdrawalStatusRejected)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
