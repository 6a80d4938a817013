package account

import (
	"context"
	"fmt"
	"sync/atomic"

	"go-campzeo-client/src/application/store"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainSocial "go-campzeo-client/src/domain/social"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type IAccountUseCase interface {
	Status(ctx context.Context) (domainSocial.Status, error)
	ConnectURL(ctx context.Context, platform domainCampaign.PlatformType) (string, error)
	ConnectQR(ctx context.Context, platform domainCampaign.PlatformType, size int) ([]byte, error)
	Disconnect(ctx context.Context, platform domainCampaign.PlatformType) (store.Update[bool], error)
	PinterestBoards(ctx context.Context) ([]domainSocial.PinterestBoard, error)
	CreatePinterestBoard(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error)
	FacebookPages(ctx context.Context) ([]domainSocial.FacebookPage, error)
}

type AccountUseCase struct {
	SocialRepository backend.SocialRepositoryInterface
	Validator        helper.Validator
	Logger           *logger.Logger

	status        *store.Sequencer[domainSocial.Status]
	disconnects   *store.TwoPhase[domainCampaign.PlatformType, bool]
	creatingBoard atomic.Bool
}

func NewAccountUseCase(
	socialRepository backend.SocialRepositoryInterface,
	validator helper.Validator,
	loggerInstance *logger.Logger,
) IAccountUseCase {
	return &AccountUseCase{
		SocialRepository: socialRepository,
		Validator:        validator,
		Logger:           loggerInstance,
		status:           store.NewSequencer[domainSocial.Status](),
		disconnects:      store.NewTwoPhase[domainCampaign.PlatformType, bool](),
	}
}

// Status returns the connection of every platform. Disconnects still in
// flight already show as disconnected.
func (u *AccountUseCase) Status(ctx context.Context) (domainSocial.Status, error) {
	ticket := u.status.Begin()
	status, err := u.SocialRepository.GetStatus(ctx)
	if err != nil {
		return nil, err
	}
	if !u.status.Resolve(ticket, status) {
		if latest, ok := u.status.Latest(); ok {
			status = latest
		}
	}

	u.disconnects.Forget()
	out := status.Clone()
	for platform, connected := range u.disconnects.Overlay() {
		conn := out[platform]
		conn.Connected = connected
		out[platform] = conn
	}
	return out, nil
}

func (u *AccountUseCase) ConnectURL(ctx context.Context, platform domainCampaign.PlatformType) (string, error) {
	platform, err := linkable(platform)
	if err != nil {
		return "", err
	}
	authURL, err := u.SocialRepository.GetAuthURL(ctx, platform)
	if err != nil {
		return "", err
	}
	u.Logger.Info("Connect URL issued", zap.String("platform", string(platform)))
	return authURL, nil
}

// ConnectQR renders the connect URL as a PNG so it can be opened on a phone
func (u *AccountUseCase) ConnectQR(ctx context.Context, platform domainCampaign.PlatformType, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < minQRSize || size > maxQRSize {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{
			Field:   "size",
			Message: fmt.Sprintf("Size must be between %d and %d", minQRSize, maxQRSize),
		}})
	}
	authURL, err := u.ConnectURL(ctx, platform)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(authURL, qrcode.Medium, size)
	if err != nil {
		u.Logger.Error("Error rendering connect QR code", zap.Error(err), zap.String("platform", string(platform)))
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	return png, nil
}

// Disconnect unlinks a platform optimistically; the returned update holds
// the connected flag to show.
func (u *AccountUseCase) Disconnect(ctx context.Context, platform domainCampaign.PlatformType) (store.Update[bool], error) {
	platform, err := linkable(platform)
	if err != nil {
		return store.Update[bool]{}, err
	}
	if err := u.disconnects.Begin(platform, true, false); err != nil {
		return store.Update[bool]{}, domainErrors.NewAppError(err, domainErrors.Conflict)
	}
	if err := u.SocialRepository.Disconnect(ctx, platform); err != nil {
		update, _ := u.disconnects.Rollback(platform, err)
		u.Logger.Warn("Disconnect rolled back", zap.String("platform", string(platform)), zap.Error(err))
		return update, err
	}
	update, _ := u.disconnects.Commit(platform)
	u.Logger.Info("Platform disconnected", zap.String("platform", string(platform)))
	return update, nil
}

func (u *AccountUseCase) PinterestBoards(ctx context.Context) ([]domainSocial.PinterestBoard, error) {
	return u.SocialRepository.GetPinterestBoards(ctx)
}

// CreatePinterestBoard allows a single creation request at a time
func (u *AccountUseCase) CreatePinterestBoard(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error) {
	if err := u.Validator.Struct(form); err != nil {
		return nil, err
	}
	if !u.creatingBoard.CompareAndSwap(false, true) {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	defer u.creatingBoard.Store(false)

	board, err := u.SocialRepository.CreatePinterestBoard(ctx, form)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Pinterest board created", zap.String("boardID", board.ID))
	return board, nil
}

func (u *AccountUseCase) FacebookPages(ctx context.Context) ([]domainSocial.FacebookPage, error) {
	return u.SocialRepository.GetFacebookPages(ctx)
}

// linkable accepts platforms backed by a social account
func linkable(platform domainCampaign.PlatformType) (domainCampaign.PlatformType, error) {
	parsed, ok := domainCampaign.ParsePlatform(string(platform))
	if !ok {
		return "", domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "platform", Message: "Choose a supported platform"}})
	}
	if parsed.IsVirtual() {
		return "", domainErrors.NewDomainRuleViolation("%s does not use a linked account", parsed)
	}
	return parsed, nil
}
