package backend

import (
	"context"
	"encoding/json"
	"net/http"

	domainNotification "go-campzeo-client/src/domain/notification"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Notification is the wire shape of a notification
type Notification struct {
	ID        ID     `json:"id" validate:"required"`
	Title     string `json:"title"`
	Message   string `json:"message" validate:"required"`
	Type      string `json:"type"`
	IsRead    bool   `json:"isRead"`
	Hidden    bool   `json:"hidden"`
	CreatedAt Time   `json:"createdAt"`
}

// NotificationRepositoryInterface wraps the /notifications endpoints
type NotificationRepositoryInterface interface {
	GetPage(ctx context.Context, page int, limit int) (*domainNotification.Page, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	SetHidden(ctx context.Context, id string, hidden bool) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewNotificationRepository(client Caller, loggerInstance *logger.Logger) NotificationRepositoryInterface {
	return &NotificationRepository{Client: client, Logger: loggerInstance}
}

func (r *NotificationRepository) GetPage(ctx context.Context, page int, limit int) (*domainNotification.Page, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/notifications", pageQuery(page, limit), nil, &raw); err != nil {
		r.Logger.Error("Error getting notifications", zap.Error(err))
		return nil, err
	}
	items, err := decodeList[Notification](raw, "notification list", "notifications", "items")
	if err != nil {
		return nil, err
	}

	out := &domainNotification.Page{Items: make([]domainNotification.Notification, len(items))}
	unread := 0
	for i, n := range items {
		out.Items[i] = domainNotification.Notification{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			Hidden:    n.Hidden,
			CreatedAt: n.CreatedAt.Time,
		}
		if !n.IsRead {
			unread++
		}
	}

	meta := gjson.ParseBytes(payload(raw))
	out.UnreadCount = unread
	if v := meta.Get("unreadCount"); v.Exists() {
		out.UnreadCount = int(v.Int())
	}
	out.Total = len(items)
	for _, path := range []string{"total", "pagination.total"} {
		if v := meta.Get(path); v.Exists() {
			out.Total = int(v.Int())
			break
		}
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	if err := r.Client.Do(ctx, http.MethodPatch, "/notifications/"+escape(id)+"/read", nil, nil, nil); err != nil {
		r.Logger.Error("Error marking notification read", zap.Error(err), zap.String("notificationID", id))
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	if err := r.Client.Do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, nil); err != nil {
		r.Logger.Error("Error marking all notifications read", zap.Error(err))
		return err
	}
	return nil
}

func (r *NotificationRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	body := map[string]bool{"hidden": hidden}
	if err := r.Client.Do(ctx, http.MethodPatch, "/notifications/"+escape(id), nil, body, nil); err != nil {
		r.Logger.Error("Error updating notification visibility", zap.Error(err), zap.String("notificationID", id), zap.Bool("hidden", hidden))
		return err
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	if err := r.Client.Do(ctx, http.MethodDelete, "/notifications/"+escape(id), nil, nil, nil); err != nil {
		r.Logger.Error("Error deleting notification", zap.Error(err), zap.String("notificationID", id))
		return err
	}
	r.Logger.Info("Notification deleted", zap.String("notificationID", id))
	return nil
}
