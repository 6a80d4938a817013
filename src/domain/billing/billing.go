package billing

import "time"

// Usage is the current period's consumption against plan limits
type Usage struct {
	PostsUsed      int `json:"postsUsed"`
	PostsLimit     int `json:"postsLimit"`
	CampaignsUsed  int `json:"campaignsUsed"`
	CampaignsLimit int `json:"campaignsLimit"`
	ContactsUsed   int `json:"contactsUsed"`
	ContactsLimit  int `json:"contactsLimit"`
}

// Subscription is the user's active plan subscription
type Subscription struct {
	ID                 string    `json:"id"`
	PlanName           string    `json:"planName"`
	Status             string    `json:"status"`
	AutoRenew          bool      `json:"autoRenew"`
	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`
}

// IsActive reports whether the subscription grants access
func (s *Subscription) IsActive() bool {
	return s != nil && (s.Status == "active" || s.Status == "trialing")
}

// Plan is a purchasable plan
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
}

// Payment is a past charge
type Payment struct {
	ID       string    `json:"id"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Status   string    `json:"status"`
	PaidAt   time.Time `json:"paidAt"`
}

// Overview is everything the billing screen renders
type Overview struct {
	Usage        Usage         `json:"usage"`
	Subscription *Subscription `json:"subscription"`
	Plans        []Plan        `json:"plans"`
	Payments     []Payment     `json:"payments"`
}

// CancelForm is the subscription cancellation schema.
// CancelImmediately must be an explicit choice, Reason is optional.
type CancelForm struct {
	CancelImmediately *bool  `json:"cancelImmediately" validate:"required"`
	Reason            string `json:"reason" validate:"max=500"`
}
