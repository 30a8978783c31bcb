package service

import (
	"context"
	"fmt"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAffiliateService interface {
	// AccrueSale records a pending commission when a checkout starts with a
	// referral code.
	AccrueSale(ctx context.Context, checkout *entity.Checkout, plan *entity.Plan) error
	// ApproveSaleForCheckout moves the sale to approved once the payment
	// resolved. Driven by the billing event consumer.
	ApproveSaleForCheckout(ctx context.Context, checkoutId uuid.UUID) error
	// PromotePayableSales moves approved sales past the guarantee window to
	// payable. Driven by the scheduler. Returns how many were promoted.
	PromotePayableSales(ctx context.Context) (int, error)

	GetOverview(ctx context.Context, tenantId uuid.UUID) (*dto.AffiliateOverviewResponse, error)
	RequestWithdrawal(ctx context.Context, tenantId uuid.UUID, amount int64) (*dto.WithdrawalResponse, error)
}

type AffiliateService struct {
	uowFactory    unitofwork.RepositoryFactory
	guaranteeDays int
	log           logger.ILogger
}

func NewAffiliateService(uowFactory unitofwork.RepositoryFactory, guaranteeDays int, log logger.ILogger) IAffiliateService {
	return &AffiliateService{
		uowFactory:    uowFactory,
		guaranteeDays: guaranteeDays,
		log:           log,
	}
}

func (s *AffiliateService) AccrueSale(ctx context.Context, checkout *entity.Checkout, plan *entity.Plan) error {
	if checkout.AffiliateCode == nil || *checkout.AffiliateCode == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AffiliateRepository()

	link, err := repo.FindOneLink(ctx, specification.Filter("code", *checkout.AffiliateCode))
	if err != nil {
		return err
	}
	if link == nil {
		return dto.ErrAffiliateCodeNotFound
	}

	commission := plan.Price * int64(link.CommissionBps) / 10000

	return repo.CreateSale(ctx, &entity.AffiliateSale{
		Id:         uuid.New(),
		LinkId:     link.Id,
		CheckoutId: checkout.Id,
		Amount:     commission,
		Status:     entity.SaleStatusPending,
	})
}

func (s *AffiliateService) ApproveSaleForCheckout(ctx context.Context, checkoutId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AffiliateRepository()

	sale, err := repo.FindOneSale(ctx, specification.Filter("checkout_id", checkoutId))
	if err != nil {
		return err
	}
	if sale == nil {
		// checkout had no referral, nothing to do
		return nil
	}
	if sale.Status != entity.SaleStatusPending {
		// replayed approval
		return nil
	}

	now := time.Now()
	sale.Status = entity.SaleStatusApproved
	sale.ApprovedAt = &now
	return repo.UpdateSale(ctx, sale)
}

func (s *AffiliateService) PromotePayableSales(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback() //nolint:errcheck

	repo := uow.AffiliateRepository()
	cutoff := time.Now().AddDate(0, 0, -s.guaranteeDays)

	sales, err := repo.FindAllSales(ctx,
		specification.StatusIs{Status: string(entity.SaleStatusApproved)},
		specification.ApprovedBefore{Cutoff: cutoff},
	)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, sale := range sales {
		sale.Status = entity.SaleStatusPayable
		sale.PayableAt = &now
		if err := repo.UpdateSale(ctx, sale); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	if len(sales) > 0 {
		s.log.Info("affiliate", "Promoted sales to payable", map[string]interface{}{
			"count":  len(sales),
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}
	return len(sales), nil
}

func (s *AffiliateService) GetOverview(ctx context.Context, tenantId uuid.UUID) (*dto.AffiliateOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AffiliateRepository()

	link, err := repo.FindOneLink(ctx, specification.TenantOwnedBy{TenantID: tenantId})
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, dto.ErrAffiliateNotFound
	}

	pending, err := repo.SumSalesByStatus(ctx, link.Id, entity.SaleStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := repo.SumSalesByStatus(ctx, link.Id, entity.SaleStatusApproved)
	if err != nil {
		return nil, err
	}
	payable, err := repo.SumSalesByStatus(ctx, link.Id, entity.SaleStatusPayable)
	if err != nil {
		return nil, err
	}
	withdrawn, err := repo.SumWithdrawals(ctx, link.Id)
	if err != nil {
		return nil, err
	}

	sales, err := repo.FindAllSales(ctx,
		specification.Filter("link_id", link.Id),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.AffiliateOverviewResponse{
		Code:            link.Code,
		CommissionBps:   link.CommissionBps,
		PendingBalance:  pending,
		ApprovedBalance: approved,
		PayableBalance:  payable - withdrawn,
		WithdrawnTotal:  withdrawn,
		Sales:           make([]dto.AffiliateSaleResponse, 0, len(sales)),
	}
	for _, sale := range sales {
		resp.Sales = append(resp.Sales, dto.AffiliateSaleResponse{
			Id:        sale.Id,
			Amount:    sale.Amount,
			Status:    string(sale.Status),
			PayableAt: sale.PayableAt,
			CreatedAt: sale.CreatedAt,
		})
	}
	return resp, nil
}

func (s *AffiliateService) RequestWithdrawal(ctx context.Context, tenantId uuid.UUID, amount int64) (*dto.WithdrawalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() //nolint:errcheck

	repo := uow.AffiliateRepository()

	link, err := repo.FindOneLink(ctx, specification.TenantOwnedBy{TenantID: tenantId})
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, dto.ErrAffiliateNotFound
	}

	payable, err := repo.SumSalesByStatus(ctx, link.Id, entity.SaleStatusPayable)
	if err != nil {
		return nil, err
	}
	withdrawn, err := repo.SumWithdrawals(ctx, link.Id)
	if err != nil {
		return nil, err
	}
	if payable-withdrawn < amount {
		return nil, fmt.Errorf("%w: available %d, requested %d", dto.ErrInsufficientBalance, payable-withdrawn, amount)
	}

	withdrawal := &entity.AffiliateWithdrawal{
		Id:     uuid.New(),
		LinkId: link.Id,
		Amount: amount,
		Status: entity.WithdrawalStatusRequested,
	}
	if err := repo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.WithdrawalResponse{
		Id:        withdrawal.Id,
		Amount:    withdrawal.Amount,
		Status:    string(withdrawal.Status),
		CreatedAt: withdrawal.CreatedAt,
	}, nil
}
