package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancehub/internal/domain/entity"
	"freelancehub/pkg/utils"
)

func TestNotifyPersistsAndPushes(t *testing.T) {
	repo := newFakeNotificationRepo()
	pusher := &fakePusher{}
	u := NewNotificationUsecase(repo, pusher)

	ctx := context.Background()
	notification, err := u.Notify(ctx, "user-1", "user-2", entity.NotificationNewMessage,
		"New message", "hello", map[string]interface{}{"conversation_id": "c-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, notification.ID)
	assert.False(t, notification.IsRead)
	assert.Equal(t, []string{"user-1"}, pusher.users)

	count, err := u.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotifySurvivesPushFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	u := NewNotificationUsecase(repo, &fakePusher{Fail: true})

	ctx := context.Background()
	_, err := u.Notify(ctx, "user-1", "", entity.NotificationNewOrder, "New order", "order placed", nil)
	require.NoError(t, err)

	notifications, total, err := u.List(ctx, "user-1", false, utils.NewPaginationParams(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, notifications, 1)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	u := NewNotificationUsecase(repo, &fakePusher{})

	ctx := context.Background()
	notification, err := u.Notify(ctx, "user-1", "", entity.NotificationNewOrder, "New order", "order placed", nil)
	require.NoError(t, err)

	// Someone else's mark-read is a no-op, not an error.
	require.NoError(t, u.MarkRead(ctx, notification.ID, "user-2"))
	count, err := u.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, u.MarkRead(ctx, notification.ID, "user-1"))
	count, err = u.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	u := NewNotificationUsecase(repo, &fakePusher{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := u.Notify(ctx, "user-1", "", entity.NotificationNewMessage, "New message", "hi", nil)
		require.NoError(t, err)
	}

	require.NoError(t, u.MarkAllRead(ctx, "user-1"))

	count, err := u.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	unread, _, err := u.List(ctx, "user-1", true, utils.NewPaginationParams(1, 20))
	require.NoError(t, err)
	assert.Empty(t, unread)
}
