package scheduler

import (
	"context"
	"time"

	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/pkg/mailer"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the recurring billing housekeeping: promoting affiliate
// commissions past the guarantee window and nudging tenants whose paid
// access is about to lapse.
type Scheduler struct {
	cron         *cron.Cron
	uowFactory   unitofwork.RepositoryFactory
	affiliates   service.IAffiliateService
	mail         mailer.IMailer
	log          logger.ILogger
	reminderDays int
}

func NewScheduler(
	uowFactory unitofwork.RepositoryFactory,
	affiliates service.IAffiliateService,
	mail mailer.IMailer,
	log logger.ILogger,
	reminderDays int,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		uowFactory:   uowFactory,
		affiliates:   affiliates,
		mail:         mail,
		log:          log,
		reminderDays: reminderDays,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.promotePayableSales); err != nil {
		return err
	}
	// 09:00 server time so the reminder lands during the tenant's morning.
	if _, err := s.cron.AddFunc("0 9 * * *", s.sendExpiryReminders); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler", "Billing jobs scheduled", nil)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) promotePayableSales() {
	promoted, err := s.affiliates.PromotePayableSales(context.Background())
	if err != nil {
		s.log.Error("scheduler", "Failed to promote payable sales", map[string]interface{}{"error": err.Error()})
		return
	}
	if promoted > 0 {
		s.log.Info("scheduler", "Promoted affiliate sales to payable", map[string]interface{}{"count": promoted})
	}
}

func (s *Scheduler) sendExpiryReminders() {
	ctx := context.Background()
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenants, err := uow.TenantRepository().FindAll(ctx, specification.AccessExpiringBetween{
		From: now,
		To:   now.AddDate(0, 0, s.reminderDays),
	})
	if err != nil {
		s.log.Error("scheduler", "Failed to list expiring tenants", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, tenant := range tenants {
		daysLeft := int(tenant.AccessExpiresAt.Sub(now).Hours() / 24)
		if err := s.mail.SendRenewalReminder(tenant.Email, tenant.Name, daysLeft); err != nil {
			s.log.Warn("scheduler", "Failed to send renewal reminder", map[string]interface{}{
				"tenant_id": tenant.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	if len(tenants) > 0 {
		s.log.Info("scheduler", "Renewal reminders dispatched", map[string]interface{}{"count": len(tenants)})
	}
}
