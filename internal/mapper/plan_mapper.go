package mapper

import (
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/model"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:                      p.Id,
		Name:                    p.Name,
		Slug:                    p.Slug,
		Description:             p.Description,
		Price:                   p.Price,
		BillingType:             entity.BillingType(p.BillingType),
		RecurrenceInterval:      p.RecurrenceInterval,
		RecurrenceUnit:          entity.RecurrenceUnit(p.RecurrenceUnit),
		AccessDays:              p.AccessDays,
		WebinarLimit:            p.WebinarLimit,
		UploadLimit:             p.UploadLimit,
		StorageLimitMB:          p.StorageLimitMB,
		WhatsappAccountLimit:    p.WhatsappAccountLimit,
		AiTranscriptionEnabled:  p.AiTranscriptionEnabled,
		AiDesignerEnabled:       p.AiDesignerEnabled,
		MessageGeneratorEnabled: p.MessageGeneratorEnabled,
		Gateway:                 entity.GatewayName(p.Gateway),
		StripePriceId:           p.StripePriceId,
		IsActive:                p.IsActive,
		IsVisible:               p.IsVisible,
		SortOrder:               p.SortOrder,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:                      p.Id,
		Name:                    p.Name,
		Slug:                    p.Slug,
		Description:             p.Description,
		Price:                   p.Price,
		BillingType:             string(p.BillingType),
		RecurrenceInterval:      p.RecurrenceInterval,
		RecurrenceUnit:          string(p.RecurrenceUnit),
		AccessDays:              p.AccessDays,
		WebinarLimit:            p.WebinarLimit,
		UploadLimit:             p.UploadLimit,
		StorageLimitMB:          p.StorageLimitMB,
		WhatsappAccountLimit:    p.WhatsappAccountLimit,
		AiTranscriptionEnabled:  p.AiTranscriptionEnabled,
		AiDesignerEnabled:       p.AiDesignerEnabled,
		MessageGeneratorEnabled: p.MessageGeneratorEnabled,
		Gateway:                 string(p.Gateway),
		StripePriceId:           p.StripePriceId,
		IsActive:                p.IsActive,
		IsVisible:               p.IsVisible,
		SortOrder:               p.SortOrder,
	}
}
