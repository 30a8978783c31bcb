package service

import (
	"context"
	"testing"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActivePlans_FiltersAndOrders(t *testing.T) {
	factory := newMemFactory()
	svc := NewPlanService(factory, time.Minute)

	factory.store.plans = append(factory.store.plans,
		&entity.Plan{Id: uuid.New(), Name: "Pro", IsActive: true, IsVisible: true, SortOrder: 2},
		&entity.Plan{Id: uuid.New(), Name: "Starter", IsActive: true, IsVisible: true, SortOrder: 1},
		&entity.Plan{Id: uuid.New(), Name: "Retired", IsActive: false, IsVisible: true, SortOrder: 0},
		&entity.Plan{Id: uuid.New(), Name: "Lifetime", IsActive: true, IsVisible: false, SortOrder: 3},
	)

	plans, err := svc.ListActivePlans(context.Background())

	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Starter", plans[0].Name)
	assert.Equal(t, "Pro", plans[1].Name)
	assert.Equal(t, "BRL", plans[0].Currency)
}

func TestListActivePlans_ServesFromCache(t *testing.T) {
	factory := newMemFactory()
	svc := NewPlanService(factory, time.Minute)

	factory.store.plans = append(factory.store.plans,
		&entity.Plan{Id: uuid.New(), Name: "Starter", IsActive: true, IsVisible: true},
	)

	first, err := svc.ListActivePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// catalog changes are invisible until the TTL lapses
	factory.store.plans = append(factory.store.plans,
		&entity.Plan{Id: uuid.New(), Name: "Pro", IsActive: true, IsVisible: true},
	)

	second, err := svc.ListActivePlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestGetPlanSummary(t *testing.T) {
	factory := newMemFactory()
	svc := NewPlanService(factory, time.Minute)

	plan := &entity.Plan{
		Id:          uuid.New(),
		Name:        "Pro Mensal",
		Price:       19700,
		BillingType: entity.BillingTypeRecurring,
		IsActive:    true,
	}
	factory.store.plans = append(factory.store.plans, plan)

	summary, err := svc.GetPlanSummary(context.Background(), plan.Id)

	require.NoError(t, err)
	assert.Equal(t, int64(19700), summary.TotalAmount)
	assert.Equal(t, "BRL", summary.Currency)
	assert.True(t, summary.IsRecurring)
}

func TestGetPlanSummary_Inactive(t *testing.T) {
	factory := newMemFactory()
	svc := NewPlanService(factory, time.Minute)

	plan := &entity.Plan{Id: uuid.New(), IsActive: false}
	factory.store.plans = append(factory.store.plans, plan)

	_, err := svc.GetPlanSummary(context.Background(), plan.Id)

	assert.ErrorIs(t, err, dto.ErrPlanInactive)
}

func TestGetPlan_NotFound(t *testing.T) {
	factory := newMemFactory()
	svc := NewPlanService(factory, time.Minute)

	_, err := svc.GetPlan(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dto.ErrPlanNotFound)
}
