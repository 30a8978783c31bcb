package mapper

import (
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/model"
)

type TenantMapper struct{}

func NewTenantMapper() *TenantMapper {
	return &TenantMapper{}
}

func (m *TenantMapper) ToEntity(t *model.Tenant) *entity.Tenant {
	if t == nil {
		return nil
	}
	return &entity.Tenant{
		Id:                      t.Id,
		Name:                    t.Name,
		Email:                   t.Email,
		PasswordHash:            t.PasswordHash,
		Status:                  entity.TenantStatus(t.Status),
		AccessExpiresAt:         t.AccessExpiresAt,
		WebinarLimit:            t.WebinarLimit,
		UploadLimit:             t.UploadLimit,
		StorageLimitMB:          t.StorageLimitMB,
		WhatsappAccountLimit:    t.WhatsappAccountLimit,
		AiTranscriptionEnabled:  t.AiTranscriptionEnabled,
		AiDesignerEnabled:       t.AiDesignerEnabled,
		MessageGeneratorEnabled: t.MessageGeneratorEnabled,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}

func (m *TenantMapper) ToModel(t *entity.Tenant) *model.Tenant {
	if t == nil {
		return nil
	}
	return &model.Tenant{
		Id:                      t.Id,
		Name:                    t.Name,
		Email:                   t.Email,
		PasswordHash:            t.PasswordHash,
		Status:                  string(t.Status),
		AccessExpiresAt:         t.AccessExpiresAt,
		WebinarLimit:            t.WebinarLimit,
		UploadLimit:             t.UploadLimit,
		StorageLimitMB:          t.StorageLimitMB,
		WhatsappAccountLimit:    t.WhatsappAccountLimit,
		AiTranscriptionEnabled:  t.AiTranscriptionEnabled,
		AiDesignerEnabled:       t.AiDesignerEnabled,
		MessageGeneratorEnabled: t.MessageGeneratorEnabled,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}
