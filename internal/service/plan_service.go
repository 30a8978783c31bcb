package service

import (
	"context"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const activePlansCacheKey = "plans:active"

type IPlanService interface {
	ListActivePlans(ctx context.Context) ([]dto.PlanResponse, error)
	GetPlanSummary(ctx context.Context, id uuid.UUID) (*dto.PlanSummaryResponse, error)
	// GetPlan returns the raw entity for internal callers (checkout).
	GetPlan(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
}

type PlanService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, cacheTTL time.Duration) IPlanService {
	return &PlanService{
		uowFactory: uowFactory,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *PlanService) ListActivePlans(ctx context.Context) ([]dto.PlanResponse, error) {
	if cached, found := s.cache.Get(activePlansCacheKey); found {
		return cached.([]dto.PlanResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.VisibleOnly{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, toPlanResponse(plan))
	}

	s.cache.Set(activePlansCacheKey, responses, gocache.DefaultExpiration)
	return responses, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, dto.ErrPlanNotFound
	}
	return plan, nil
}

func (s *PlanService) GetPlanSummary(ctx context.Context, id uuid.UUID) (*dto.PlanSummaryResponse, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, dto.ErrPlanInactive
	}
	return &dto.PlanSummaryResponse{
		Plan:        toPlanResponse(plan),
		TotalAmount: plan.Price,
		Currency:    "BRL",
		IsRecurring: plan.IsRecurring(),
	}, nil
}

func toPlanResponse(plan *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		Id:                 plan.Id,
		Name:               plan.Name,
		Slug:               plan.Slug,
		Description:        plan.Description,
		Price:              plan.Price,
		Currency:           "BRL",
		BillingType:        string(plan.BillingType),
		RecurrenceInterval: plan.RecurrenceInterval,
		RecurrenceUnit:     string(plan.RecurrenceUnit),
		AccessDays:         plan.AccessDays,

		WebinarLimit:         plan.WebinarLimit,
		UploadLimit:          plan.UploadLimit,
		StorageLimitMB:       plan.StorageLimitMB,
		WhatsappAccountLimit: plan.WhatsappAccountLimit,

		AiTranscriptionEnabled:  plan.AiTranscriptionEnabled,
		AiDesignerEnabled:       plan.AiDesignerEnabled,
		MessageGeneratorEnabled: plan.MessageGeneratorEnabled,

		Gateway:   string(plan.Gateway),
		SortOrder: plan.SortOrder,
	}
}
