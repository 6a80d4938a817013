package notification

import (
	"context"
	"testing"

	"go-campzeo-client/src/application/store"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainNotification "go-campzeo-client/src/domain/notification"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepository struct {
	getPageFn   func(ctx context.Context, page int, limit int) (*domainNotification.Page, error)
	markReadFn  func(ctx context.Context, id string) error
	setHiddenFn func(ctx context.Context, id string, hidden bool) error
}

func (m *mockNotificationRepository) GetPage(ctx context.Context, page int, limit int) (*domainNotification.Page, error) {
	return m.getPageFn(ctx, page, limit)
}
func (m *mockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return m.markReadFn(ctx, id)
}
func (m *mockNotificationRepository) MarkAllRead(context.Context) error {
	return nil
}
func (m *mockNotificationRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	return m.setHiddenFn(ctx, id, hidden)
}
func (m *mockNotificationRepository) Delete(context.Context, string) error {
	return nil
}

func feed() *domainNotification.Page {
	return &domainNotification.Page{
		Items: []domainNotification.Notification{
			{ID: "n1", Title: "Post sent"},
			{ID: "n2", Title: "Payment received", IsRead: true},
		},
		UnreadCount: 1,
		Total:       2,
	}
}

func TestList_Defaults(t *testing.T) {
	var gotPage, gotLimit int
	repo := &mockNotificationRepository{
		getPageFn: func(_ context.Context, page int, limit int) (*domainNotification.Page, error) {
			gotPage, gotLimit = page, limit
			return feed(), nil
		},
	}
	page, err := NewNotificationUseCase(repo, logger.NewNopLogger()).List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, defaultPageSize, gotLimit)
	assert.Equal(t, 1, page.UnreadCount)
	assert.Len(t, page.Items, 2)
}

func TestSetHidden_RollbackRestoresVisibility(t *testing.T) {
	repo := &mockNotificationRepository{
		getPageFn: func(context.Context, int, int) (*domainNotification.Page, error) {
			return feed(), nil
		},
		setHiddenFn: func(context.Context, string, bool) error {
			return domainErrors.NewBackendError(500, "")
		},
	}
	useCase := NewNotificationUseCase(repo, logger.NewNopLogger())

	update, err := useCase.SetHidden(context.Background(), "n1", true)
	require.Error(t, err)
	assert.Equal(t, store.RolledBack, update.Phase)
	assert.False(t, update.Current())

	page, err := useCase.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.False(t, page.Items[0].Hidden)
}

func TestSetHidden_PendingOverlaysList(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := &mockNotificationRepository{
		getPageFn: func(context.Context, int, int) (*domainNotification.Page, error) {
			return feed(), nil
		},
		setHiddenFn: func(context.Context, string, bool) error {
			close(started)
			<-release
			return nil
		},
	}
	useCase := NewNotificationUseCase(repo, logger.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		_, err := useCase.SetHidden(context.Background(), "n2", true)
		done <- err
	}()
	<-started

	page, err := useCase.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.False(t, page.Items[0].Hidden)
	assert.True(t, page.Items[1].Hidden)

	_, err = useCase.SetHidden(context.Background(), "n2", false)
	assert.True(t, domainErrors.IsType(err, domainErrors.Conflict))

	close(release)
	require.NoError(t, <-done)
}

func TestMarkRead(t *testing.T) {
	var marked string
	repo := &mockNotificationRepository{
		markReadFn: func(_ context.Context, id string) error {
			marked = id
			return nil
		},
	}
	useCase := NewNotificationUseCase(repo, logger.NewNopLogger())

	require.NoError(t, useCase.MarkRead(context.Background(), "n1"))
	assert.Equal(t, "n1", marked)
	assert.True(t, domainErrors.IsType(useCase.MarkRead(context.Background(), ""), domainErrors.NotFound))
}
