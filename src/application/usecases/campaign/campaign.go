package campaign

import (
	"context"
	"errors"

	"go-campzeo-client/src/application/store"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

type ICampaignUseCase interface {
	List(ctx context.Context, query backend.CampaignQuery) ([]domainCampaign.Campaign, error)
	Get(ctx context.Context, id string) (*domainCampaign.Campaign, error)
	Create(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error)
	Update(ctx context.Context, id string, form *domainCampaign.Form) (*domainCampaign.Campaign, error)
	Delete(ctx context.Context, id string) error
	ListPosts(ctx context.Context, campaignID string) ([]domainCampaign.Post, error)
	GetPost(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error)
	DeletePost(ctx context.Context, campaignID string, postID string) error
	SendPost(ctx context.Context, campaignID string, postID string) error
}

type CampaignUseCase struct {
	CampaignRepository backend.CampaignRepositoryInterface
	PostRepository     backend.PostRepositoryInterface
	Validator          helper.Validator
	Logger             *logger.Logger

	list  *store.Sequencer[[]domainCampaign.Campaign]
	posts *store.Sequencer[[]domainCampaign.Post]
}

func NewCampaignUseCase(
	campaignRepository backend.CampaignRepositoryInterface,
	postRepository backend.PostRepositoryInterface,
	validator helper.Validator,
	loggerInstance *logger.Logger,
) ICampaignUseCase {
	return &CampaignUseCase{
		CampaignRepository: campaignRepository,
		PostRepository:     postRepository,
		Validator:          validator,
		Logger:             loggerInstance,
		list:               store.NewSequencer[[]domainCampaign.Campaign](),
		posts:              store.NewSequencer[[]domainCampaign.Post](),
	}
}

// List refreshes the campaign list; a response overtaken by a newer refresh
// yields the newer list.
func (u *CampaignUseCase) List(ctx context.Context, query backend.CampaignQuery) ([]domainCampaign.Campaign, error) {
	ticket := u.list.Begin()
	campaigns, err := u.CampaignRepository.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if !u.list.Resolve(ticket, campaigns) {
		u.Logger.Debug("Dropped stale campaign list", zap.Uint64("ticket", uint64(ticket)))
		if latest, ok := u.list.Latest(); ok {
			return latest, nil
		}
	}
	return campaigns, nil
}

func (u *CampaignUseCase) Get(ctx context.Context, id string) (*domainCampaign.Campaign, error) {
	if id == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return u.CampaignRepository.GetByID(ctx, id)
}

func (u *CampaignUseCase) Create(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	if err := u.Validator.Struct(form); err != nil {
		return nil, err
	}
	created, err := u.CampaignRepository.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Campaign created", zap.String("campaignID", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (u *CampaignUseCase) Update(ctx context.Context, id string, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	if id == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := u.Validator.Struct(form); err != nil {
		return nil, err
	}
	updated, err := u.CampaignRepository.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Campaign updated", zap.String("campaignID", id))
	return updated, nil
}

func (u *CampaignUseCase) Delete(ctx context.Context, id string) error {
	if err := u.CampaignRepository.Delete(ctx, id); err != nil {
		return err
	}
	u.Logger.Info("Campaign deleted", zap.String("campaignID", id))
	return nil
}

func (u *CampaignUseCase) ListPosts(ctx context.Context, campaignID string) ([]domainCampaign.Post, error) {
	ticket := u.posts.Begin()
	posts, err := u.PostRepository.GetAll(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !u.posts.Resolve(ticket, posts) {
		if latest, ok := u.posts.Latest(); ok {
			return latest, nil
		}
	}
	return posts, nil
}

func (u *CampaignUseCase) GetPost(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error) {
	return u.PostRepository.GetByID(ctx, campaignID, postID)
}

func (u *CampaignUseCase) DeletePost(ctx context.Context, campaignID string, postID string) error {
	if err := u.PostRepository.Delete(ctx, campaignID, postID); err != nil {
		return err
	}
	u.Logger.Info("Post deleted", zap.String("campaignID", campaignID), zap.String("postID", postID))
	return nil
}

// SendPost publishes a post right away instead of waiting for its schedule
func (u *CampaignUseCase) SendPost(ctx context.Context, campaignID string, postID string) error {
	if campaignID == "" || postID == "" {
		return domainErrors.NewAppError(errors.New("campaign and post are required"), domainErrors.ValidationError)
	}
	if err := u.PostRepository.Send(ctx, campaignID, postID); err != nil {
		return err
	}
	u.Logger.Info("Post sent", zap.String("campaignID", campaignID), zap.String("postID", postID))
	return nil
}
