package contact

import (
	domainContact "go-campzeo-client/src/domain/contact"
)

type ContactRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	WhatsApp    string   `json:"whatsapp"`
	CampaignIDs []string `json:"campaignIds"`
}

type ContactResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	WhatsApp    string   `json:"whatsapp"`
	CampaignIDs []string `json:"campaignIds"`
}

func (r *ContactRequest) toForm() *domainContact.Form {
	return &domainContact.Form{
		Name:        r.Name,
		Email:       r.Email,
		Mobile:      r.Mobile,
		WhatsApp:    r.WhatsApp,
		CampaignIDs: r.CampaignIDs,
	}
}

func contactToResponse(c *domainContact.Contact) ContactResponse {
	campaignIDs := c.CampaignIDs
	if campaignIDs == nil {
		campaignIDs = []string{}
	}
	return ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Mobile:      c.Mobile,
		WhatsApp:    c.WhatsApp,
		CampaignIDs: campaignIDs,
	}
}

func contactsToResponse(contacts []domainContact.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = contactToResponse(&contacts[i])
	}
	return out
}
