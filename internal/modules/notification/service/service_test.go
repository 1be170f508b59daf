package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	notifRepo "sereno.app/mindgarden/internal/modules/notification/repository"
	"sereno.app/mindgarden/internal/testutil"
)

func newTestService(t *testing.T) NotificationService {
	t.Helper()
	return NewNotificationService(notifRepo.NewNotificationRepository(testutil.OpenTestDB(t)), nil)
}

func TestNotificationLifecycle(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	notifications := []*entity.Notification{
		{UserID: userID, Type: entity.NotificationAchievement, Code: "energy_emerging", Message: "Achievement unlocked: Emerging Energy"},
		{UserID: userID, Type: entity.NotificationStageUp, Code: "sprout", Message: "Your tree grew from seed to sprout with 10 points!"},
	}
	for _, n := range notifications {
		if err := svc.CreateNotification(ctx, n); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	count, err := svc.UnreadCount(userID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 2 {
		t.Errorf("unread = %d, want 2", count)
	}

	list, err := svc.GetNotifications(userID, 10, 0)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("notifications = %d, want 2", len(list))
	}

	if err := svc.MarkAsRead(list[0].ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	count, err = svc.UnreadCount(userID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 1 {
		t.Errorf("unread after one read = %d, want 1", count)
	}

	if err := svc.MarkAllAsRead(userID); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	count, err = svc.UnreadCount(userID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Errorf("unread after read-all = %d, want 0", count)
	}
}

func TestUnreadCountScopedToUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	userID := uuid.New()
	if err := svc.CreateNotification(ctx, &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationAchievement,
		Code:    "streak_starter",
		Message: "Achievement unlocked: Streak Starter",
	}); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	count, err := svc.UnreadCount(uuid.New())
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Errorf("other user's unread = %d, want 0", count)
	}
}
