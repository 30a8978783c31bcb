package billing

import (
	"time"

	"autowebinar-be/internal/entity"
)

// ClassifyPurchase decides what kind of purchase a checkout is, given the
// buyer's current tenant (nil for first-time buyers) and any current
// subscription or latest plan they hold.
//
//	renewal — buying the plan they already have
//	upgrade — holding access and buying a pricier plan
//	new     — everything else (first purchase, lapsed access, downgrade)
func ClassifyPurchase(now time.Time, tenant *entity.Tenant, currentPlan *entity.Plan, target *entity.Plan) entity.PurchaseKind {
	if tenant == nil || currentPlan == nil {
		return entity.PurchaseKindNew
	}
	if currentPlan.Id == target.Id {
		return entity.PurchaseKindRenewal
	}
	if tenant.HasAccess(now) && target.Price > currentPlan.Price {
		return entity.PurchaseKindUpgrade
	}
	return entity.PurchaseKindNew
}
