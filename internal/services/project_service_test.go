package services

import (
	"errors"
	"testing"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type stubProjectStore struct {
	projects map[string]*models.ImpactProject
	order    []string
}

func newStubProjectStore() *stubProjectStore {
	return &stubProjectStore{projects: map[string]*models.ImpactProject{}}
}

func (s *stubProjectStore) AddProject(p *models.ImpactProject) {
	s.projects[p.ID] = p
	s.order = append(s.order, p.ID)
}

func (s *stubProjectStore) GetProject(id string) *models.ImpactProject { return s.projects[id] }

func (s *stubProjectStore) UpdateProject(p *models.ImpactProject) bool {
	if _, ok := s.projects[p.ID]; !ok {
		return false
	}
	s.projects[p.ID] = p
	return true
}

func (s *stubProjectStore) ListProjects(inst models.InstitutionID) []*models.ImpactProject {
	out := []*models.ImpactProject{}
	for _, id := range s.order {
		p := s.projects[id]
		if inst == "" || p.InstitutionID == inst {
			out = append(out, p)
		}
	}
	return out
}

func newTestProjects() *ProjectService {
	svc := NewProjectService(newStubProjectStore())
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestProjectCreateDefaults(t *testing.T) {
	svc := newTestProjects()

	p, err := svc.Create(models.ImpactProject{Title: "Niterói Jovem EcoSocial", InstitutionID: models.InstSENAC})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Status != models.ProjectDraft {
		t.Fatalf("project = %+v", p)
	}
	if p.LastUpdated.IsZero() {
		t.Fatal("LastUpdated must be stamped")
	}

	if _, err := svc.Create(models.ImpactProject{InstitutionID: models.InstSENAC}); err == nil {
		t.Fatal("missing title must be invalid")
	}
	if _, err := svc.Create(models.ImpactProject{Title: "Sem casa"}); err == nil {
		t.Fatal("missing institution must be invalid")
	}
}

func TestProjectUpdatePreservesWorkflowFields(t *testing.T) {
	svc := newTestProjects()
	p, _ := svc.Create(models.ImpactProject{Title: "Projeto", InstitutionID: models.InstSESC})
	if _, err := svc.Submit(p.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.RequestChanges(p.ID, models.Permissions{CanApprove: true}, "detalhar metas"); err != nil {
		t.Fatalf("request changes: %v", err)
	}

	// A client update cannot rewrite the status or drop the feedback.
	edited := *p
	edited.Description = "Nova descrição"
	edited.Status = models.ProjectApproved
	edited.Feedback = ""
	got, err := svc.Update(edited)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != models.ProjectChangesRequested {
		t.Fatalf("status = %s, want CHANGES_REQUESTED preserved", got.Status)
	}
	if got.Feedback != "detalhar metas" {
		t.Fatalf("feedback = %q, want preserved", got.Feedback)
	}
	if got.Description != "Nova descrição" {
		t.Fatal("editable fields must update")
	}
}

func TestProjectApprovalLocksEdits(t *testing.T) {
	svc := newTestProjects()
	p, _ := svc.Create(models.ImpactProject{Title: "Projeto", InstitutionID: models.InstFECOMERCIO})

	if _, err := svc.Approve(p.ID, models.Permissions{CanApprove: true}); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("approve draft err = %v", err)
	}
	if _, err := svc.Submit(p.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(p.ID, models.Permissions{}); !errors.Is(err, ErrApproverRequired) {
		t.Fatalf("approve without permission err = %v", err)
	}
	got, err := svc.Approve(p.ID, models.Permissions{CanApprove: true})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.Status != models.ProjectApproved {
		t.Fatalf("status = %s", got.Status)
	}

	if _, err := svc.Update(*got); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("update approved err = %v", err)
	}
	if _, err := svc.Submit(p.ID); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("resubmit approved err = %v", err)
	}
}

func TestProjectListFiltersByInstitution(t *testing.T) {
	svc := newTestProjects()
	svc.Create(models.ImpactProject{Title: "A", InstitutionID: models.InstSENAC})
	svc.Create(models.ImpactProject{Title: "B", InstitutionID: models.InstSESC})
	svc.Create(models.ImpactProject{Title: "C", InstitutionID: models.InstSENAC})

	if got := len(svc.List(models.InstSENAC)); got != 2 {
		t.Fatalf("senac projects = %d, want 2", got)
	}
	if got := len(svc.List("")); got != 3 {
		t.Fatalf("all projects = %d, want 3", got)
	}
}
