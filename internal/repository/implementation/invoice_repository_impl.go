package implementation

import (
	"context"
	"errors"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/mapper"
	"autowebinar-be/internal/model"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/scope"
	"autowebinar-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *InvoiceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.InvoiceToModel(invoice)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*invoice = *r.mapper.InvoiceToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.InvoiceToModel(invoice)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*invoice = *r.mapper.InvoiceToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var m model.Invoice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InvoiceToEntity(&m), nil
}

func (r *InvoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var models []*model.Invoice
	// Invoice history reads newest-first everywhere.
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Invoice, len(models))
	for i, m := range models {
		entities[i] = r.mapper.InvoiceToEntity(m)
	}
	return entities, nil
}
