package usecase

import (
	"context"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/utils"
)

// RealtimePusher delivers events to a connected user session. Push is an
// optimization on top of the persisted record; failures are never surfaced
// to the originating operation.
type RealtimePusher interface {
	SendEventToUser(userID, eventName string, payload interface{}) error
}

type NotificationUsecase struct {
	notificationRepo repository.NotificationRepository
	pusher           RealtimePusher
}

func NewNotificationUsecase(
	notificationRepo repository.NotificationRepository,
	pusher RealtimePusher,
) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// Notify persists a notification, then attempts real-time delivery. The
// persisted record is the source of truth; an offline recipient or an
// unstarted channel only produces a log line.
func (u *NotificationUsecase) Notify(
	ctx context.Context,
	recipientID, senderID, notificationType, title, message string,
	data map[string]interface{},
) (*entity.Notification, error) {
	notification := &entity.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Data:        data,
	}

	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if u.pusher != nil {
		if err := u.pusher.SendEventToUser(recipientID, "notification", notification); err != nil {
			logger.Warn("Real-time push failed for %s: %v", recipientID, err)
		}
	}

	return notification, nil
}

func (u *NotificationUsecase) List(ctx context.Context, recipientID string, unreadOnly bool, pagination utils.PaginationParams) ([]*entity.Notification, int64, error) {
	return u.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly, pagination.PageSize, pagination.Offset)
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, id, recipientID string) error {
	return u.notificationRepo.MarkRead(ctx, id, recipientID)
}

func (u *NotificationUsecase) MarkAllRead(ctx context.Context, recipientID string) error {
	return u.notificationRepo.MarkAllRead(ctx, recipientID)
}

func (u *NotificationUsecase) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return u.notificationRepo.CountUnread(ctx, recipientID)
}
