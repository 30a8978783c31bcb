package contract

import (
	"context"
	"errors"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
)

// ErrDuplicateEvent is returned by Create when the (gateway, external id,
// event type) key already exists. Callers treat it as "already applied".
var ErrDuplicateEvent = errors.New("webhook event already recorded")

type WebhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error)
}
