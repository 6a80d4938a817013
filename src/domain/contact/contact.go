package contact

// Contact is a CRUD entity with no derived state
type Contact struct {
	ID          string
	Name        string
	Email       string
	Mobile      string
	WhatsApp    string
	CampaignIDs []string
}

// Form is the contact create/edit schema
type Form struct {
	Name        string   `json:"name" validate:"required,min=3,max=30,alpha_space"`
	Email       string   `json:"email" validate:"required,email"`
	Mobile      string   `json:"mobile" validate:"required,mobile_in"`
	WhatsApp    string   `json:"whatsapp" validate:"required,mobile_in"`
	CampaignIDs []string `json:"campaignIds"`
}

// ListFilter narrows the contact list
type ListFilter struct {
	Search     string
	CampaignID string
	Page       int
	Limit      int
}
