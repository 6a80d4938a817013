package backend

import (
	"context"
	"encoding/json"
	"net/http"

	domainContact "go-campzeo-client/src/domain/contact"
	logger "go-campzeo-client/src/infrastructure/logger"

	"go.uber.org/zap"
)

// Contact is the wire shape of a contact
type Contact struct {
	ID          ID     `json:"id" validate:"required"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	WhatsApp    string `json:"whatsapp"`
	CampaignIDs []ID   `json:"campaignIds"`
}

type contactRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	WhatsApp    string   `json:"whatsapp"`
	CampaignIDs []string `json:"campaignIds"`
}

// ContactExport is the CSV produced by GET /contacts/export
type ContactExport struct {
	Data        []byte
	ContentType string
}

// ContactRepositoryInterface wraps the /contacts endpoints
type ContactRepositoryInterface interface {
	GetAll(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error)
	GetByID(ctx context.Context, id string) (*domainContact.Contact, error)
	Create(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error)
	Update(ctx context.Context, id string, form *domainContact.Form) (*domainContact.Contact, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (*ContactExport, error)
}

type ContactRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewContactRepository(client Caller, loggerInstance *logger.Logger) ContactRepositoryInterface {
	return &ContactRepository{Client: client, Logger: loggerInstance}
}

func (r *ContactRepository) GetAll(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error) {
	params := pageQuery(filter.Page, filter.Limit)
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.CampaignID != "" {
		params.Set("campaignId", filter.CampaignID)
	}
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/contacts", params, nil, &raw); err != nil {
		r.Logger.Error("Error getting contacts", zap.Error(err))
		return nil, err
	}
	contacts, err := decodeList[Contact](raw, "contact list", "contacts", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainContact.Contact, len(contacts))
	for i := range contacts {
		out[i] = *contacts[i].toDomainMapper()
	}
	r.Logger.Info("Successfully retrieved contacts", zap.Int("count", len(out)))
	return out, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domainContact.Contact, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/contacts/"+escape(id), nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting contact", zap.Error(err), zap.String("contactID", id))
		return nil, err
	}
	contact, err := decodeOne[Contact](raw, "contact", "contact")
	if err != nil {
		return nil, err
	}
	return contact.toDomainMapper(), nil
}

func (r *ContactRepository) Create(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, "/contacts", nil, contactFromForm(form), &raw); err != nil {
		r.Logger.Error("Error creating contact", zap.Error(err))
		return nil, err
	}
	contact, err := decodeOne[Contact](raw, "contact", "contact")
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Successfully created contact", zap.String("contactID", contact.ID.String()))
	return contact.toDomainMapper(), nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, form *domainContact.Form) (*domainContact.Contact, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPatch, "/contacts/"+escape(id), nil, contactFromForm(form), &raw); err != nil {
		r.Logger.Error("Error updating contact", zap.Error(err), zap.String("contactID", id))
		return nil, err
	}
	contact, err := decodeOne[Contact](raw, "contact", "contact")
	if err != nil {
		return nil, err
	}
	return contact.toDomainMapper(), nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if err := r.Client.Do(ctx, http.MethodDelete, "/contacts/"+escape(id), nil, nil, nil); err != nil {
		r.Logger.Error("Error deleting contact", zap.Error(err), zap.String("contactID", id))
		return err
	}
	r.Logger.Info("Successfully deleted contact", zap.String("contactID", id))
	return nil
}

func (r *ContactRepository) Export(ctx context.Context) (*ContactExport, error) {
	data, contentType, err := r.Client.DoRaw(ctx, http.MethodGet, "/contacts/export", nil)
	if err != nil {
		r.Logger.Error("Error exporting contacts", zap.Error(err))
		return nil, err
	}
	if contentType == "" {
		contentType = "text/csv"
	}
	r.Logger.Info("Exported contacts", zap.Int("bytes", len(data)))
	return &ContactExport{Data: data, ContentType: contentType}, nil
}

func contactFromForm(form *domainContact.Form) *contactRequest {
	campaignIDs := form.CampaignIDs
	if campaignIDs == nil {
		campaignIDs = []string{}
	}
	return &contactRequest{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		WhatsApp:    form.WhatsApp,
		CampaignIDs: campaignIDs,
	}
}

func (c *Contact) toDomainMapper() *domainContact.Contact {
	name := c.Name
	if name == "" {
		name = c.ContactName
	}
	return &domainContact.Contact{
		ID:          c.ID.String(),
		Name:        name,
		Email:       c.Email,
		Mobile:      c.Mobile,
		WhatsApp:    c.WhatsApp,
		CampaignIDs: idsToStrings(c.CampaignIDs),
	}
}
