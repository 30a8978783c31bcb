package billing

import (
	"time"

	"autowebinar-be/internal/entity"
)

// AccessWindow computes when paid access expires for one billing cycle that
// started at cycleStart. The window is driven by the plan's AccessDays, not
// by the recurrence interval, so an annual plan can grant 365 days while
// billing yearly and a monthly plan can pad a grace margin.
func AccessWindow(cycleStart time.Time, plan *entity.Plan) time.Time {
	return cycleStart.AddDate(0, 0, plan.AccessDays)
}

// NextBillingDate advances one recurrence interval from the cycle start.
// Calendar arithmetic (AddDate) keeps monthly billing anchored to the same
// day-of-month where possible.
func NextBillingDate(cycleStart time.Time, plan *entity.Plan) time.Time {
	interval := plan.RecurrenceInterval
	if interval <= 0 {
		interval = 1
	}
	switch plan.RecurrenceUnit {
	case entity.RecurrenceUnitYear:
		return cycleStart.AddDate(interval, 0, 0)
	default:
		return cycleStart.AddDate(0, interval, 0)
	}
}
