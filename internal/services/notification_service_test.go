package services

import (
	"testing"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type stubNotificationStore struct {
	items []*models.Notification
}

func (s *stubNotificationStore) AddNotification(n *models.Notification) {
	s.items = append([]*models.Notification{n}, s.items...)
}

func (s *stubNotificationStore) ListNotifications() []*models.Notification { return s.items }

func (s *stubNotificationStore) MarkNotificationRead(id string) bool {
	for _, n := range s.items {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}

func (s *stubNotificationStore) MarkAllNotificationsRead() int {
	count := 0
	for _, n := range s.items {
		if !n.Read {
			n.Read = true
			count++
		}
	}
	return count
}

func newTestNotifications() (*NotificationService, *stubNotificationStore) {
	store := &stubNotificationStore{}
	svc := NewNotificationService(store)
	n := 0
	svc.idGen = func() string {
		n++
		return "n" + string(rune('0'+n))
	}
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestNotifyFillsIDAndTimestamp(t *testing.T) {
	svc, store := newTestNotifications()

	svc.Notify(models.Notification{Type: models.NotifDeadline, Title: "Prazo", Message: "Vence amanhã"})
	if len(store.items) != 1 {
		t.Fatalf("items = %d", len(store.items))
	}
	got := store.items[0]
	if got.ID != "n1" {
		t.Fatalf("id = %s", got.ID)
	}
	if !got.Timestamp.Equal(svc.now()) {
		t.Fatalf("timestamp = %v", got.Timestamp)
	}

	// Caller-provided id and timestamp are kept.
	stamp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.Notify(models.Notification{ID: "custom", Timestamp: stamp, Type: models.NotifApproval})
	got = store.items[0]
	if got.ID != "custom" || !got.Timestamp.Equal(stamp) {
		t.Fatalf("got = %s %v", got.ID, got.Timestamp)
	}
}

func TestMarkRead(t *testing.T) {
	svc, store := newTestNotifications()
	svc.Notify(models.Notification{Type: models.NotifDeadline})
	svc.Notify(models.Notification{Type: models.NotifApproval})

	if err := svc.MarkRead(store.items[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !store.items[0].Read || store.items[1].Read {
		t.Fatal("only the targeted notification should be read")
	}
	if err := svc.MarkRead("missing"); err == nil {
		t.Fatal("unknown id must error")
	}

	if got := svc.MarkAllRead(); got != 1 {
		t.Fatalf("marked = %d, want the one remaining unread", got)
	}
}

func TestNotifySweepPriorities(t *testing.T) {
	svc, store := newTestNotifications()

	stamp := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	svc.NotifySweep([]ReminderEntry{
		{GapCode: "305-1", Type: TierReminder, Message: "a", Timestamp: stamp},
		{GapCode: "404-1", Type: TierUrgent, Message: "b", Timestamp: stamp},
		{GapCode: "302-1", Type: TierCritical, Message: "c", Timestamp: stamp},
		{GapCode: "201-1", Type: TierEscalation, Message: "d", Timestamp: stamp},
	})

	if len(store.items) != 4 {
		t.Fatalf("items = %d, want 4", len(store.items))
	}
	// Inbox is newest first, so the escalation entry leads.
	want := []struct {
		code     string
		priority models.Priority
	}{
		{"201-1", models.PriorityHigh},
		{"302-1", models.PriorityHigh},
		{"404-1", models.PriorityMedium},
		{"305-1", models.PriorityLow},
	}
	for i, w := range want {
		n := store.items[i]
		if n.Type != models.NotifGapReminder {
			t.Fatalf("item %d type = %s", i, n.Type)
		}
		if n.Meta.IndicatorCode != w.code || n.Priority != w.priority {
			t.Fatalf("item %d = %s %s, want %s %s", i, n.Meta.IndicatorCode, n.Priority, w.code, w.priority)
		}
		if !n.Timestamp.Equal(stamp) {
			t.Fatalf("item %d timestamp = %v, want sweep time kept", i, n.Timestamp)
		}
	}
}
