package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainSocial "go-campzeo-client/src/domain/social"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PinterestBoard is the wire shape of a Pinterest board
type PinterestBoard struct {
	ID          ID     `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// FacebookPage is the wire shape of a Facebook page
type FacebookPage struct {
	ID   ID     `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// SocialRepositoryInterface wraps the /socialmedia and /user/social-status endpoints
type SocialRepositoryInterface interface {
	GetAuthURL(ctx context.Context, platform domainCampaign.PlatformType) (string, error)
	GetStatus(ctx context.Context) (domainSocial.Status, error)
	Disconnect(ctx context.Context, platform domainCampaign.PlatformType) error
	GetPinterestBoards(ctx context.Context) ([]domainSocial.PinterestBoard, error)
	CreatePinterestBoard(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error)
	GetFacebookPages(ctx context.Context) ([]domainSocial.FacebookPage, error)
}

type SocialRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewSocialRepository(client Caller, loggerInstance *logger.Logger) SocialRepositoryInterface {
	return &SocialRepository{Client: client, Logger: loggerInstance}
}

func (r *SocialRepository) GetAuthURL(ctx context.Context, platform domainCampaign.PlatformType) (string, error) {
	var raw json.RawMessage
	query := url.Values{"platform": {string(platform)}}
	if err := r.Client.Do(ctx, http.MethodGet, "/socialmedia/auth-url", query, nil, &raw); err != nil {
		r.Logger.Error("Error getting auth URL", zap.Error(err), zap.String("platform", string(platform)))
		return "", err
	}
	authURL := firstString(raw, "url", "authUrl", "auth_url")
	if authURL == "" {
		return "", shapeError("auth url", errors.New("no url in response"))
	}
	if _, err := url.ParseRequestURI(authURL); err != nil {
		return "", shapeError("auth url", err)
	}
	return authURL, nil
}

// GetStatus accepts {"facebook": true} as well as {"FACEBOOK": {"connected": true, "name": "..."}}
func (r *SocialRepository) GetStatus(ctx context.Context) (domainSocial.Status, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/user/social-status", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting social status", zap.Error(err))
		return nil, err
	}
	body := gjson.ParseBytes(payload(raw, "status", "socialStatus"))
	if !body.IsObject() {
		return nil, shapeError("social status", errors.New("expected an object"))
	}

	status := domainSocial.Status{}
	body.ForEach(func(key, value gjson.Result) bool {
		platform, ok := domainCampaign.ParsePlatform(key.String())
		if !ok {
			return true
		}
		conn := domainSocial.Connection{}
		switch {
		case value.IsObject():
			conn.Connected = value.Get("connected").Bool() || value.Get("isConnected").Bool()
			conn.Name = firstNonEmpty(value.Get("name").String(), value.Get("username").String(), value.Get("pageName").String())
		default:
			conn.Connected = value.Bool()
		}
		status[platform] = conn
		return true
	})
	for _, platform := range domainCampaign.AllPlatforms {
		if _, ok := status[platform]; !ok {
			status[platform] = domainSocial.Connection{Connected: platform.IsVirtual()}
		}
	}
	r.Logger.Info("Successfully retrieved social status", zap.Int("platforms", len(status)))
	return status, nil
}

func (r *SocialRepository) Disconnect(ctx context.Context, platform domainCampaign.PlatformType) error {
	if platform.IsVirtual() {
		return domainErrors.NewDomainRuleViolation("%s has no linked account to disconnect", platform)
	}
	body := map[string]string{"platform": string(platform)}
	if err := r.Client.Do(ctx, http.MethodPost, "/socialmedia/disconnect", nil, body, nil); err != nil {
		r.Logger.Error("Error disconnecting platform", zap.Error(err), zap.String("platform", string(platform)))
		return err
	}
	r.Logger.Info("Platform disconnected", zap.String("platform", string(platform)))
	return nil
}

func (r *SocialRepository) GetPinterestBoards(ctx context.Context) ([]domainSocial.PinterestBoard, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/socialmedia/pinterest/boards", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting Pinterest boards", zap.Error(err))
		return nil, err
	}
	boards, err := decodeList[PinterestBoard](raw, "pinterest boards", "boards", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainSocial.PinterestBoard, len(boards))
	for i, b := range boards {
		out[i] = domainSocial.PinterestBoard{ID: b.ID.String(), Name: b.Name, Description: b.Description}
	}
	return out, nil
}

func (r *SocialRepository) CreatePinterestBoard(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error) {
	r.Logger.Info("Creating Pinterest board", zap.String("name", form.Name))
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, "/socialmedia/pinterest/boards", nil, form, &raw); err != nil {
		r.Logger.Error("Error creating Pinterest board", zap.Error(err), zap.String("name", form.Name))
		return nil, err
	}
	board, err := decodeOne[PinterestBoard](raw, "pinterest board", "board")
	if err != nil {
		return nil, err
	}
	return &domainSocial.PinterestBoard{ID: board.ID.String(), Name: board.Name, Description: board.Description}, nil
}

func (r *SocialRepository) GetFacebookPages(ctx context.Context) ([]domainSocial.FacebookPage, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/socialmedia/facebook/pages", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting Facebook pages", zap.Error(err))
		return nil, err
	}
	pages, err := decodeList[FacebookPage](raw, "facebook pages", "pages", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainSocial.FacebookPage, len(pages))
	for i, p := range pages {
		out[i] = domainSocial.FacebookPage{ID: p.ID.String(), Name: p.Name}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
