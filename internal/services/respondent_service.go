package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// RespondentStore is the roster persistence.
type RespondentStore interface {
	AddRespondent(r *models.Respondent)
	GetRespondent(id string) *models.Respondent
	UpdateRespondent(r *models.Respondent) bool
	DeleteRespondent(id string) bool
	ListRespondents() []*models.Respondent
}

// RespondentService manages the roster of people assigned to indicators.
type RespondentService struct {
	store    RespondentStore
	notifier Notifier
	now      func() time.Time
	idGen    func() string
}

func NewRespondentService(store RespondentStore) *RespondentService {
	return &RespondentService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

func (s *RespondentService) SetNotifier(n Notifier) { s.notifier = n }

func (s *RespondentService) Create(r models.Respondent) (*models.Respondent, error) {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return nil, NewInvalidError("name and email required")
	}
	for _, existing := range s.store.ListRespondents() {
		if strings.EqualFold(existing.Email, r.Email) {
			return nil, NewConflictError("email already registered")
		}
	}
	if r.ID == "" {
		r.ID = s.idGen()
	}
	if r.Status == "" {
		r.Status = models.RespondentPending
	}
	s.store.AddRespondent(&r)
	return &r, nil
}

func (s *RespondentService) Get(id string) (*models.Respondent, error) {
	r := s.store.GetRespondent(id)
	if r == nil {
		return nil, NewNotFoundError("respondent not found")
	}
	return r, nil
}

func (s *RespondentService) Update(r models.Respondent) (*models.Respondent, error) {
	if r.ID == "" {
		return nil, NewInvalidError("respondent id required")
	}
	if !s.store.UpdateRespondent(&r) {
		return nil, NewNotFoundError("respondent not found")
	}
	return &r, nil
}

func (s *RespondentService) Delete(id string) error {
	if !s.store.DeleteRespondent(id) {
		return NewNotFoundError("respondent not found")
	}
	return nil
}

func (s *RespondentService) List() []*models.Respondent {
	return s.store.ListRespondents()
}

// SendReminders emits a pending-work notification for every active or
// pending respondent with unfinished indicators and returns how many were
// reminded.
func (s *RespondentService) SendReminders() int {
	count := 0
	for _, r := range s.store.ListRespondents() {
		if r.Status == models.RespondentInactive {
			continue
		}
		if r.IndicatorsCompleted >= r.IndicatorsAssigned {
			continue
		}
		count++
		if s.notifier != nil {
			s.notifier.Notify(models.Notification{
				Type:      models.NotifDeadline,
				Title:     "Lembrete de pendência",
				Message:   fmt.Sprintf("Lembrete enviado para %s: %d indicadores pendentes", r.Name, r.IndicatorsAssigned-r.IndicatorsCompleted),
				Timestamp: s.now(),
				Priority:  models.PriorityMedium,
				Meta:      models.NotificationMeta{TargetID: r.ID, Department: r.Department},
			})
		}
	}
	return count
}
