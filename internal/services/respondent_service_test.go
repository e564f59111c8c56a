package services

import (
	"strings"
	"testing"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type stubRespondentStore struct {
	roster []*models.Respondent
}

func (s *stubRespondentStore) AddRespondent(r *models.Respondent) {
	s.roster = append(s.roster, r)
}

func (s *stubRespondentStore) GetRespondent(id string) *models.Respondent {
	for _, r := range s.roster {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *stubRespondentStore) UpdateRespondent(r *models.Respondent) bool {
	for i, existing := range s.roster {
		if existing.ID == r.ID {
			s.roster[i] = r
			return true
		}
	}
	return false
}

func (s *stubRespondentStore) DeleteRespondent(id string) bool {
	for i, r := range s.roster {
		if r.ID == id {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return true
		}
	}
	return false
}

func (s *stubRespondentStore) ListRespondents() []*models.Respondent { return s.roster }

func TestRespondentCreateDefaultsAndDedup(t *testing.T) {
	store := &stubRespondentStore{}
	svc := NewRespondentService(store)

	r, err := svc.Create(models.Respondent{Name: "João Facilities", Email: "joao@rj.senac.br", Department: "Facilities"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" {
		t.Fatal("id must be generated")
	}
	if r.Status != models.RespondentPending {
		t.Fatalf("status = %s, want PENDING", r.Status)
	}

	// Email dedup is case-insensitive.
	if _, err := svc.Create(models.Respondent{Name: "Outro", Email: "JOAO@rj.senac.br"}); err == nil {
		t.Fatal("duplicate email must conflict")
	}
	if _, err := svc.Create(models.Respondent{Name: "Sem email"}); err == nil {
		t.Fatal("missing email must be invalid")
	}
}

func TestRespondentUpdateAndDelete(t *testing.T) {
	store := &stubRespondentStore{}
	svc := NewRespondentService(store)

	r, err := svc.Create(models.Respondent{Name: "Ana", Email: "ana@rj.senac.br"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r.Department = "Financeiro"
	r.Status = models.RespondentActive
	if _, err := svc.Update(*r); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Department != "Financeiro" || got.Status != models.RespondentActive {
		t.Fatalf("got = %+v", got)
	}

	if err := svc.Delete(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(r.ID); err == nil {
		t.Fatal("deleting twice must fail")
	}
	if _, err := svc.Update(models.Respondent{ID: "ghost"}); err == nil {
		t.Fatal("updating unknown respondent must fail")
	}
}

func TestSendRemindersSkipsInactiveAndComplete(t *testing.T) {
	store := &stubRespondentStore{roster: []*models.Respondent{
		{ID: "r1", Name: "João", Status: models.RespondentActive, IndicatorsAssigned: 5, IndicatorsCompleted: 2},
		{ID: "r2", Name: "Ana", Status: models.RespondentInactive, IndicatorsAssigned: 5, IndicatorsCompleted: 0},
		{ID: "r3", Name: "Maria", Status: models.RespondentActive, IndicatorsAssigned: 3, IndicatorsCompleted: 3},
		{ID: "r4", Name: "Pedro", Status: models.RespondentPending, IndicatorsAssigned: 2, IndicatorsCompleted: 0},
	}}
	svc := NewRespondentService(store)
	notifier := &stubNotifier{}
	svc.SetNotifier(notifier)

	if got := svc.SendReminders(); got != 2 {
		t.Fatalf("reminded = %d, want 2", got)
	}
	sent := notifier.list()
	if len(sent) != 2 {
		t.Fatalf("notifications = %d", len(sent))
	}
	if sent[0].Meta.TargetID != "r1" || sent[1].Meta.TargetID != "r4" {
		t.Fatalf("targets = %s, %s", sent[0].Meta.TargetID, sent[1].Meta.TargetID)
	}
	if want := "Lembrete enviado para João: 3 indicadores pendentes"; sent[0].Message != want {
		t.Fatalf("message = %q, want %q", sent[0].Message, want)
	}
	if !strings.Contains(sent[1].Message, "2 indicadores pendentes") {
		t.Fatalf("message = %q", sent[1].Message)
	}
}
