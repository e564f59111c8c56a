package services

import (
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// NotificationStore is the inbox persistence.
type NotificationStore interface {
	AddNotification(n *models.Notification)
	ListNotifications() []*models.Notification
	MarkNotificationRead(id string) bool
	MarkAllNotificationsRead() int
}

type NotificationService struct {
	store NotificationStore
	now   func() time.Time
	idGen func() string
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

// Notify stores an event in the inbox, filling id and timestamp when absent.
func (s *NotificationService) Notify(n models.Notification) {
	if n.ID == "" {
		n.ID = s.idGen()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}
	s.store.AddNotification(&n)
}

// List returns the inbox, newest first.
func (s *NotificationService) List() []*models.Notification {
	return s.store.ListNotifications()
}

func (s *NotificationService) MarkRead(id string) error {
	if !s.store.MarkNotificationRead(id) {
		return NewNotFoundError("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead() int {
	return s.store.MarkAllNotificationsRead()
}

// NotifySweep mirrors an escalation sweep into the inbox as GAP_REMINDER
// entries.
func (s *NotificationService) NotifySweep(entries []ReminderEntry) {
	for _, e := range entries {
		s.Notify(models.Notification{
			Type:      models.NotifGapReminder,
			Title:     "Lembrete de GAP",
			Message:   e.Message,
			Timestamp: e.Timestamp,
			Priority:  priorityForTier(e.Type),
			Meta:      models.NotificationMeta{IndicatorCode: e.GapCode},
		})
	}
}

func priorityForTier(tier EscalationTier) models.Priority {
	switch tier {
	case TierCritical, TierEscalation:
		return models.PriorityHigh
	case TierUrgent:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
