package dto

import (
	"time"

	"github.com/google/uuid"
)

type AffiliateSaleResponse struct {
	Id        uuid.UUID  `json:"id"`
	Amount    int64      `json:"amount"`
	Status    string     `json:"status"`
	PayableAt *time.Time `json:"payableAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type AffiliateOverviewResponse struct {
	Code          string `json:"code"`
	CommissionBps int    `json:"commissionBps"`

	PendingBalance  int64 `json:"pendingBalance"`
	ApprovedBalance int64 `json:"approvedBalance"`
	PayableBalance  int64 `json:"payableBalance"`
	WithdrawnTotal  int64 `json:"withdrawnTotal"`

	Sales []AffiliateSaleResponse `json:"sales"`
}

type WithdrawalRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type WithdrawalResponse struct {
	Id        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
