package mapper

import (
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:              s.Id,
		TenantId:        s.TenantId,
		PlanId:          s.PlanId,
		Gateway:         entity.GatewayName(s.Gateway),
		ExternalId:      s.ExternalId,
		Status:          entity.SubscriptionStatus(s.Status),
		NextBillingDate: s.NextBillingDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:              s.Id,
		TenantId:        s.TenantId,
		PlanId:          s.PlanId,
		Gateway:         string(s.Gateway),
		ExternalId:      s.ExternalId,
		Status:          string(s.Status),
		NextBillingDate: s.NextBillingDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
