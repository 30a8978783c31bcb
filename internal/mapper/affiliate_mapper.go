package mapper

import (
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/model"
)

type AffiliateMapper struct{}

func NewAffiliateMapper() *AffiliateMapper {
	return &AffiliateMapper{}
}

func (m *AffiliateMapper) LinkToEntity(l *model.AffiliateLink) *entity.AffiliateLink {
	if l == nil {
		return nil
	}
	return &entity.AffiliateLink{
		Id:            l.Id,
		TenantId:      l.TenantId,
		Code:          l.Code,
		CommissionBps: l.CommissionBps,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *AffiliateMapper) LinkToModel(l *entity.AffiliateLink) *model.AffiliateLink {
	if l == nil {
		return nil
	}
	return &model.AffiliateLink{
		Id:            l.Id,
		TenantId:      l.TenantId,
		Code:          l.Code,
		CommissionBps: l.CommissionBps,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *AffiliateMapper) SaleToEntity(s *model.AffiliateSale) *entity.AffiliateSale {
	if s == nil {
		return nil
	}
	return &entity.AffiliateSale{
		Id:         s.Id,
		LinkId:     s.LinkId,
		CheckoutId: s.CheckoutId,
		InvoiceId:  s.InvoiceId,
		Amount:     s.Amount,
		Status:     entity.SaleStatus(s.Status),
		ApprovedAt: s.ApprovedAt,
		PayableAt:  s.PayableAt,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *AffiliateMapper) SaleToModel(s *entity.AffiliateSale) *model.AffiliateSale {
	if s == nil {
		return nil
	}
	return &model.AffiliateSale{
		Id:         s.Id,
		LinkId:     s.LinkId,
		CheckoutId: s.CheckoutId,
		InvoiceId:  s.InvoiceId,
		Amount:     s.Amount,
		Status:     string(s.Status),
		ApprovedAt: s.ApprovedAt,
		PayableAt:  s.PayableAt,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *AffiliateMapper) WithdrawalToEntity(w *model.AffiliateWithdrawal) *entity.AffiliateWithdrawal {
	if w == nil {
		return nil
	}
	return &entity.AffiliateWithdrawal{
		Id:        w.Id,
		LinkId:    w.LinkId,
		Amount:    w.Amount,
		Status:    entity.WithdrawalStatus(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (m *AffiliateMapper) WithdrawalToModel(w *entity.AffiliateWithdrawal) *model.AffiliateWithdrawal {
	if w == nil {
		return nil
	}
	return &model.AffiliateWithdrawal{
		Id:        w.Id,
		LinkId:    w.LinkId,
		Amount:    w.Amount,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
