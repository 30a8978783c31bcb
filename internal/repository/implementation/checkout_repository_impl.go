package implementation

import (
	"context"
	"errors"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/mapper"
	"autowebinar-be/internal/model"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CheckoutRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewCheckoutRepository(db *gorm.DB) contract.CheckoutRepository {
	return &CheckoutRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *CheckoutRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CheckoutRepositoryImpl) Create(ctx context.Context, checkout *entity.Checkout) error {
	m := r.mapper.CheckoutToModel(checkout)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*checkout = *r.mapper.CheckoutToEntity(m)
	return nil
}

func (r *CheckoutRepositoryImpl) Update(ctx context.Context, checkout *entity.Checkout) error {
	m := r.mapper.CheckoutToModel(checkout)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*checkout = *r.mapper.CheckoutToEntity(m)
	return nil
}

func (r *CheckoutRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Checkout, error) {
	var m model.Checkout
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CheckoutToEntity(&m), nil
}

func (r *CheckoutRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Checkout, error) {
	var models []*model.Checkout
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Checkout, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CheckoutToEntity(m)
	}
	return entities, nil
}
