package backend

import (
	"context"
	"encoding/json"
	"net/http"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"

	"go.uber.org/zap"
)

// Campaign is the wire shape of a campaign
type Campaign struct {
	ID          ID        `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	StartDate   Date      `json:"startDate" validate:"required"`
	EndDate     Date      `json:"endDate" validate:"required"`
	ContactIDs  []ID      `json:"contactIds"`
	Contacts    []Contact `json:"contacts" validate:"-"`
	CreatedAt   Time      `json:"createdAt"`
}

type campaignRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   Time     `json:"startDate"`
	EndDate     Time     `json:"endDate"`
	ContactIDs  []string `json:"contactIds"`
}

// CampaignQuery filters the campaign list
type CampaignQuery struct {
	Search string
	Page   int
	Limit  int
}

// CampaignRepositoryInterface wraps the /campaigns endpoints
type CampaignRepositoryInterface interface {
	GetAll(ctx context.Context, query CampaignQuery) ([]domainCampaign.Campaign, error)
	GetByID(ctx context.Context, id string) (*domainCampaign.Campaign, error)
	Create(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error)
	Update(ctx context.Context, id string, form *domainCampaign.Form) (*domainCampaign.Campaign, error)
	Delete(ctx context.Context, id string) error
}

type CampaignRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewCampaignRepository(client Caller, loggerInstance *logger.Logger) CampaignRepositoryInterface {
	return &CampaignRepository{Client: client, Logger: loggerInstance}
}

func (r *CampaignRepository) GetAll(ctx context.Context, query CampaignQuery) ([]domainCampaign.Campaign, error) {
	params := pageQuery(query.Page, query.Limit)
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/campaigns", params, nil, &raw); err != nil {
		r.Logger.Error("Error getting campaigns", zap.Error(err))
		return nil, err
	}
	campaigns, err := decodeList[Campaign](raw, "campaign list", "campaigns", "items")
	if err != nil {
		r.Logger.Error("Error decoding campaigns", zap.Error(err))
		return nil, err
	}
	r.Logger.Info("Successfully retrieved campaigns", zap.Int("count", len(campaigns)))
	return campaignArrayToDomainMapper(campaigns), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domainCampaign.Campaign, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/campaigns/"+escape(id), nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting campaign", zap.Error(err), zap.String("campaignID", id))
		return nil, err
	}
	campaign, err := decodeOne[Campaign](raw, "campaign", "campaign")
	if err != nil {
		return nil, err
	}
	return campaign.toDomainMapper(), nil
}

func (r *CampaignRepository) Create(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	r.Logger.Info("Creating campaign", zap.String("name", form.Name))
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, "/campaigns", nil, campaignFromForm(form), &raw); err != nil {
		r.Logger.Error("Error creating campaign", zap.Error(err), zap.String("name", form.Name))
		return nil, err
	}
	campaign, err := decodeOne[Campaign](raw, "campaign", "campaign")
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Successfully created campaign", zap.String("campaignID", campaign.ID.String()))
	return campaign.toDomainMapper(), nil
}

func (r *CampaignRepository) Update(ctx context.Context, id string, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	r.Logger.Info("Updating campaign", zap.String("campaignID", id))
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPut, "/campaigns/"+escape(id), nil, campaignFromForm(form), &raw); err != nil {
		r.Logger.Error("Error updating campaign", zap.Error(err), zap.String("campaignID", id))
		return nil, err
	}
	campaign, err := decodeOne[Campaign](raw, "campaign", "campaign")
	if err != nil {
		return nil, err
	}
	return campaign.toDomainMapper(), nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	if err := r.Client.Do(ctx, http.MethodDelete, "/campaigns/"+escape(id), nil, nil, nil); err != nil {
		r.Logger.Error("Error deleting campaign", zap.Error(err), zap.String("campaignID", id))
		return err
	}
	r.Logger.Info("Successfully deleted campaign", zap.String("campaignID", id))
	return nil
}

func campaignFromForm(form *domainCampaign.Form) *campaignRequest {
	contactIDs := form.ContactIDs
	if contactIDs == nil {
		contactIDs = []string{}
	}
	return &campaignRequest{
		Name:        form.Name,
		Description: form.Description,
		StartDate:   Time{calendarDate(form.StartDate)},
		EndDate:     Time{calendarDate(form.EndDate)},
		ContactIDs:  contactIDs,
	}
}

func (c *Campaign) toDomainMapper() *domainCampaign.Campaign {
	contactIDs := idsToStrings(c.ContactIDs)
	if len(contactIDs) == 0 {
		for _, contact := range c.Contacts {
			if contact.ID != "" {
				contactIDs = append(contactIDs, contact.ID.String())
			}
		}
	}
	return &domainCampaign.Campaign{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate.Time,
		EndDate:     c.EndDate.Time,
		ContactIDs:  contactIDs,
		CreatedAt:   c.CreatedAt.Time,
	}
}

func campaignArrayToDomainMapper(campaigns []Campaign) []domainCampaign.Campaign {
	out := make([]domainCampaign.Campaign, len(campaigns))
	for i := range campaigns {
		out[i] = *campaigns[i].toDomainMapper()
	}
	return out
}
