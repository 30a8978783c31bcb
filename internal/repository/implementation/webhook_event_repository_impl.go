package implementation

import (
	"context"
	"errors"
	"time"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/mapper"
	"autowebinar-be/internal/model"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/specification"

	"gorm.io/gorm"
)

type WebhookEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewWebhookEventRepository(db *gorm.DB) contract.WebhookEventRepository {
	return &WebhookEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *WebhookEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create inserts the idempotency row. The unique index on
// (gateway, external_id, event_type) turns a replayed delivery into
// ErrDuplicateEvent, which the webhook service treats as already applied.
// Requires TranslateError on the gorm dialector so the pg unique violation
// surfaces as gorm.ErrDuplicatedKey.
func (r *WebhookEventRepositoryImpl) Create(ctx context.Context, event *entity.WebhookEvent) error {
	m := r.mapper.WebhookEventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrDuplicateEvent
		}
		return err
	}
	*event = *r.mapper.WebhookEventToEntity(m)
	return nil
}

func (r *WebhookEventRepositoryImpl) MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("id = ?", event.Id).
		Update("processed_at", now).Error
	if err != nil {
		return err
	}
	event.ProcessedAt = &now
	return nil
}

func (r *WebhookEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	var m model.WebhookEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WebhookEventToEntity(&m), nil
}
