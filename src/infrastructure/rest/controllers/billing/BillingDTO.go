package billing

import (
	domainBilling "go-campzeo-client/src/domain/billing"
)

type AutoRenewRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type CancelRequest struct {
	CancelImmediately *bool  `json:"cancelImmediately"`
	Reason            string `json:"reason"`
}

func (r *CancelRequest) toForm() *domainBilling.CancelForm {
	return &domainBilling.CancelForm{
		CancelImmediately: r.CancelImmediately,
		Reason:            r.Reason,
	}
}
