package services

import (
	"strings"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// ProjectStore persists impact projects.
type ProjectStore interface {
	AddProject(p *models.ImpactProject)
	GetProject(id string) *models.ImpactProject
	UpdateProject(p *models.ImpactProject) bool
	ListProjects(inst models.InstitutionID) []*models.ImpactProject
}

// ProjectService manages impact projects, which share the response approval
// workflow minus the gap side path.
type ProjectService struct {
	store ProjectStore
	now   func() time.Time
	idGen func() string
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

func (s *ProjectService) Create(p models.ImpactProject) (*models.ImpactProject, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, NewInvalidError("project title required")
	}
	if p.InstitutionID == "" {
		return nil, NewInvalidError("institution required")
	}
	if p.ID == "" {
		p.ID = s.idGen()
	}
	if p.Status == "" {
		p.Status = models.ProjectDraft
	}
	p.LastUpdated = s.now()
	s.store.AddProject(&p)
	return &p, nil
}

func (s *ProjectService) Get(id string) (*models.ImpactProject, error) {
	p := s.store.GetProject(id)
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	return p, nil
}

// Update replaces editable fields; approved projects are read-only.
func (s *ProjectService) Update(p models.ImpactProject) (*models.ImpactProject, error) {
	existing := s.store.GetProject(p.ID)
	if existing == nil {
		return nil, NewNotFoundError("project not found")
	}
	if existing.Status == models.ProjectApproved {
		return nil, ErrAlreadyApproved
	}
	p.Status = existing.Status
	p.Feedback = existing.Feedback
	p.LastUpdated = s.now()
	s.store.UpdateProject(&p)
	return &p, nil
}

func (s *ProjectService) List(inst models.InstitutionID) []*models.ImpactProject {
	return s.store.ListProjects(inst)
}

func (s *ProjectService) Submit(id string) (*models.ImpactProject, error) {
	p := s.store.GetProject(id)
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	if err := SubmitProject(p); err != nil {
		return nil, err
	}
	p.LastUpdated = s.now()
	s.store.UpdateProject(p)
	return p, nil
}

func (s *ProjectService) Approve(id string, reviewer models.Permissions) (*models.ImpactProject, error) {
	p := s.store.GetProject(id)
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	if err := ApproveProject(p, reviewer); err != nil {
		return nil, err
	}
	p.LastUpdated = s.now()
	s.store.UpdateProject(p)
	return p, nil
}

func (s *ProjectService) RequestChanges(id string, reviewer models.Permissions, feedback string) (*models.ImpactProject, error) {
	p := s.store.GetProject(id)
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	if err := RequestProjectChanges(p, reviewer, feedback); err != nil {
		return nil, err
	}
	p.LastUpdated = s.now()
	s.store.UpdateProject(p)
	return p, nil
}
