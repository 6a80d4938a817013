package notification

import (
	"context"

	"go-campzeo-client/src/application/store"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainNotification "go-campzeo-client/src/domain/notification"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

const defaultPageSize = 20

type INotificationUseCase interface {
	List(ctx context.Context, page int, limit int) (*domainNotification.Page, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	SetHidden(ctx context.Context, id string, hidden bool) (store.Update[bool], error)
	Delete(ctx context.Context, id string) error
}

type NotificationUseCase struct {
	NotificationRepository backend.NotificationRepositoryInterface
	Logger                 *logger.Logger

	list   *store.Sequencer[*domainNotification.Page]
	hidden *store.TwoPhase[string, bool]
}

func NewNotificationUseCase(notificationRepository backend.NotificationRepositoryInterface, loggerInstance *logger.Logger) INotificationUseCase {
	return &NotificationUseCase{
		NotificationRepository: notificationRepository,
		Logger:                 loggerInstance,
		list:                   store.NewSequencer[*domainNotification.Page](),
		hidden:                 store.NewTwoPhase[string, bool](),
	}
}

// List fetches a page of the feed with pending show/hide toggles applied
func (u *NotificationUseCase) List(ctx context.Context, page int, limit int) (*domainNotification.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	ticket := u.list.Begin()
	result, err := u.NotificationRepository.GetPage(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if !u.list.Resolve(ticket, result) {
		if latest, ok := u.list.Latest(); ok {
			result = latest
		}
	}

	u.hidden.Forget()
	overlay := u.hidden.Overlay()
	out := *result
	out.Items = make([]domainNotification.Notification, len(result.Items))
	for i, item := range result.Items {
		if hidden, ok := overlay[item.ID]; ok {
			item.Hidden = hidden
		}
		out.Items[i] = item
	}
	return &out, nil
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := u.NotificationRepository.MarkRead(ctx, id); err != nil {
		return err
	}
	u.Logger.Info("Notification marked as read", zap.String("notificationID", id))
	return nil
}

func (u *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	if err := u.NotificationRepository.MarkAllRead(ctx); err != nil {
		return err
	}
	u.Logger.Info("All notifications marked as read")
	return nil
}

// SetHidden shows or hides a notification optimistically
func (u *NotificationUseCase) SetHidden(ctx context.Context, id string, hidden bool) (store.Update[bool], error) {
	if id == "" {
		return store.Update[bool]{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := u.hidden.Begin(id, !hidden, hidden); err != nil {
		return store.Update[bool]{}, domainErrors.NewAppError(err, domainErrors.Conflict)
	}
	if err := u.NotificationRepository.SetHidden(ctx, id, hidden); err != nil {
		update, _ := u.hidden.Rollback(id, err)
		u.Logger.Warn("Notification visibility rolled back", zap.String("notificationID", id), zap.Error(err))
		return update, err
	}
	update, _ := u.hidden.Commit(id)
	return update, nil
}

func (u *NotificationUseCase) Delete(ctx context.Context, id string) error {
	if err := u.NotificationRepository.Delete(ctx, id); err != nil {
		return err
	}
	u.Logger.Info("Notification deleted", zap.String("notificationID", id))
	return nil
}
