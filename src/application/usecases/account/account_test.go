package account

import (
	"bytes"
	"context"
	"testing"

	"go-campzeo-client/src/application/store"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainSocial "go-campzeo-client/src/domain/social"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSocialRepository struct {
	getAuthURLFn  func(ctx context.Context, platform domainCampaign.PlatformType) (string, error)
	getStatusFn   func(ctx context.Context) (domainSocial.Status, error)
	disconnectFn  func(ctx context.Context, platform domainCampaign.PlatformType) error
	createBoardFn func(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error)
}

func (m *mockSocialRepository) GetAuthURL(ctx context.Context, platform domainCampaign.PlatformType) (string, error) {
	return m.getAuthURLFn(ctx, platform)
}
func (m *mockSocialRepository) GetStatus(ctx context.Context) (domainSocial.Status, error) {
	return m.getStatusFn(ctx)
}
func (m *mockSocialRepository) Disconnect(ctx context.Context, platform domainCampaign.PlatformType) error {
	return m.disconnectFn(ctx, platform)
}
func (m *mockSocialRepository) GetPinterestBoards(context.Context) ([]domainSocial.PinterestBoard, error) {
	return nil, nil
}
func (m *mockSocialRepository) CreatePinterestBoard(ctx context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error) {
	return m.createBoardFn(ctx, form)
}
func (m *mockSocialRepository) GetFacebookPages(context.Context) ([]domainSocial.FacebookPage, error) {
	return nil, nil
}

func connected() domainSocial.Status {
	return domainSocial.Status{
		domainCampaign.Facebook:  {Connected: true, Name: "Shop page"},
		domainCampaign.Instagram: {Connected: false},
	}
}

func newUseCase(repo *mockSocialRepository) IAccountUseCase {
	return NewAccountUseCase(repo, helper.NewValidator(logger.NewNopLogger()), logger.NewNopLogger())
}

func TestDisconnect_PendingThenCommitted(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := &mockSocialRepository{
		getStatusFn: func(context.Context) (domainSocial.Status, error) { return connected(), nil },
		disconnectFn: func(context.Context, domainCampaign.PlatformType) error {
			close(started)
			<-release
			return nil
		},
	}
	useCase := newUseCase(repo)

	done := make(chan store.Update[bool], 1)
	go func() {
		update, err := useCase.Disconnect(context.Background(), domainCampaign.Facebook)
		assert.NoError(t, err)
		done <- update
	}()
	<-started

	status, err := useCase.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status[domainCampaign.Facebook].Connected, "pending disconnect shows as disconnected")
	assert.Equal(t, "Shop page", status[domainCampaign.Facebook].Name)

	close(release)
	update := <-done
	assert.Equal(t, store.Committed, update.Phase)
	assert.False(t, update.Current())
}

func TestDisconnect_FailureRollsBack(t *testing.T) {
	repo := &mockSocialRepository{
		getStatusFn: func(context.Context) (domainSocial.Status, error) { return connected(), nil },
		disconnectFn: func(context.Context, domainCampaign.PlatformType) error {
			return domainErrors.NewBackendError(500, "provider error")
		},
	}
	useCase := newUseCase(repo)

	update, err := useCase.Disconnect(context.Background(), "facebook")
	require.Error(t, err)
	assert.Equal(t, store.RolledBack, update.Phase)
	assert.True(t, update.Current())

	status, err := useCase.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status[domainCampaign.Facebook].Connected)
}

func TestDisconnect_VirtualPlatform(t *testing.T) {
	useCase := newUseCase(&mockSocialRepository{})
	_, err := useCase.Disconnect(context.Background(), domainCampaign.SMS)
	assert.True(t, domainErrors.IsType(err, domainErrors.DomainRuleViolation))

	_, err = useCase.Disconnect(context.Background(), "MYSPACE")
	assert.True(t, domainErrors.IsType(err, domainErrors.ValidationError))
}

func TestConnectQR(t *testing.T) {
	repo := &mockSocialRepository{
		getAuthURLFn: func(_ context.Context, platform domainCampaign.PlatformType) (string, error) {
			return "https://auth.example.com/connect?platform=" + string(platform), nil
		},
	}
	useCase := newUseCase(repo)

	png, err := useCase.ConnectQR(context.Background(), domainCampaign.LinkedIn, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))

	_, err = useCase.ConnectQR(context.Background(), domainCampaign.LinkedIn, 10)
	assert.True(t, domainErrors.IsType(err, domainErrors.ValidationError))
}

func TestCreatePinterestBoard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := &mockSocialRepository{
		createBoardFn: func(_ context.Context, form *domainSocial.BoardForm) (*domainSocial.PinterestBoard, error) {
			close(started)
			<-release
			return &domainSocial.PinterestBoard{ID: "b1", Name: form.Name}, nil
		},
	}
	useCase := newUseCase(repo)

	_, err := useCase.CreatePinterestBoard(context.Background(), &domainSocial.BoardForm{})
	assert.True(t, domainErrors.IsType(err, domainErrors.ValidationError))

	done := make(chan error, 1)
	go func() {
		_, err := useCase.CreatePinterestBoard(context.Background(), &domainSocial.BoardForm{Name: "Recipes"})
		done <- err
	}()
	<-started

	_, err = useCase.CreatePinterestBoard(context.Background(), &domainSocial.BoardForm{Name: "Travel"})
	assert.True(t, domainErrors.IsType(err, domainErrors.Conflict))

	close(release)
	require.NoError(t, <-done)
}
