package services

import (
	"strings"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// PillarStore persists the editable Pillar > Notebook > Content > Question
// hierarchy.
type PillarStore interface {
	ListPillars() []*models.Pillar
	GetPillar(id string) *models.Pillar
	PutPillar(p *models.Pillar)
	DeletePillar(id string) bool
}

// EditKind discriminates which level of the hierarchy an edit targets.
type EditKind string

const (
	EditPillar   EditKind = "PILLAR"
	EditNotebook EditKind = "NOTEBOOK"
	EditContent  EditKind = "CONTENT"
	EditQuestion EditKind = "QUESTION"
)

type PillarEdit struct {
	ID    string       `json:"id,omitempty"`
	Title string       `json:"title"`
	ODSs  []models.ODS `json:"odss,omitempty"`
}

type NotebookEdit struct {
	ID       string `json:"id,omitempty"`
	PillarID string `json:"pillar_id"`
	Title    string `json:"title"`
}

type ContentEdit struct {
	ID          string `json:"id,omitempty"`
	PillarID    string `json:"pillar_id"`
	NotebookID  string `json:"notebook_id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type QuestionEdit struct {
	PillarID   string          `json:"pillar_id"`
	NotebookID string          `json:"notebook_id"`
	ContentID  string          `json:"content_id"`
	Question   models.Question `json:"question"`
}

// FrameworkEdit is a tagged union over the four edit payloads; Kind selects
// exactly one of the pointer fields.
type FrameworkEdit struct {
	Kind     EditKind      `json:"kind"`
	Pillar   *PillarEdit   `json:"pillar,omitempty"`
	Notebook *NotebookEdit `json:"notebook,omitempty"`
	Content  *ContentEdit  `json:"content,omitempty"`
	Question *QuestionEdit `json:"question,omitempty"`
}

// FrameworkService manages the editable reporting-framework hierarchy.
type FrameworkService struct {
	store PillarStore
	idGen func() string
}

func NewFrameworkService(store PillarStore) *FrameworkService {
	return &FrameworkService{store: store, idGen: func() string { return shortID(8) }}
}

func (s *FrameworkService) ListPillars() []*models.Pillar {
	return s.store.ListPillars()
}

// Apply creates or updates one node of the hierarchy, returning its id.
// An empty id means create.
func (s *FrameworkService) Apply(edit FrameworkEdit) (string, error) {
	switch edit.Kind {
	case EditPillar:
		return s.applyPillar(edit.Pillar)
	case EditNotebook:
		return s.applyNotebook(edit.Notebook)
	case EditContent:
		return s.applyContent(edit.Content)
	case EditQuestion:
		return s.applyQuestion(edit.Question)
	default:
		return "", NewInvalidError("unknown edit kind")
	}
}

func (s *FrameworkService) applyPillar(e *PillarEdit) (string, error) {
	if e == nil || strings.TrimSpace(e.Title) == "" {
		return "", NewInvalidError("pillar title required")
	}
	if e.ID == "" {
		p := &models.Pillar{ID: s.idGen(), Title: e.Title, ODSs: e.ODSs, Notebooks: []models.Notebook{}}
		s.store.PutPillar(p)
		return p.ID, nil
	}
	p := s.store.GetPillar(e.ID)
	if p == nil {
		return "", NewNotFoundError("pillar not found")
	}
	p.Title = e.Title
	if e.ODSs != nil {
		p.ODSs = e.ODSs
	}
	s.store.PutPillar(p)
	return p.ID, nil
}

func (s *FrameworkService) applyNotebook(e *NotebookEdit) (string, error) {
	if e == nil || strings.TrimSpace(e.Title) == "" {
		return "", NewInvalidError("notebook title required")
	}
	p := s.store.GetPillar(e.PillarID)
	if p == nil {
		return "", NewNotFoundError("pillar not found")
	}
	if e.ID == "" {
		nb := models.Notebook{ID: s.idGen(), Title: e.Title, Contents: []models.FrameworkContent{}}
		p.Notebooks = append(p.Notebooks, nb)
		s.store.PutPillar(p)
		return nb.ID, nil
	}
	for i := range p.Notebooks {
		if p.Notebooks[i].ID == e.ID {
			p.Notebooks[i].Title = e.Title
			s.store.PutPillar(p)
			return e.ID, nil
		}
	}
	return "", NewNotFoundError("notebook not found")
}

func (s *FrameworkService) applyContent(e *ContentEdit) (string, error) {
	if e == nil || strings.TrimSpace(e.Title) == "" {
		return "", NewInvalidError("content title required")
	}
	p := s.store.GetPillar(e.PillarID)
	if p == nil {
		return "", NewNotFoundError("pillar not found")
	}
	nb := findNotebook(p, e.NotebookID)
	if nb == nil {
		return "", NewNotFoundError("notebook not found")
	}
	if e.ID == "" {
		c := models.FrameworkContent{ID: s.idGen(), Code: e.Code, Title: e.Title, Description: e.Description, Questions: []models.Question{}}
		nb.Contents = append(nb.Contents, c)
		s.store.PutPillar(p)
		return c.ID, nil
	}
	for i := range nb.Contents {
		if nb.Contents[i].ID == e.ID {
			nb.Contents[i].Code = e.Code
			nb.Contents[i].Title = e.Title
			nb.Contents[i].Description = e.Description
			s.store.PutPillar(p)
			return e.ID, nil
		}
	}
	return "", NewNotFoundError("content not found")
}

func (s *FrameworkService) applyQuestion(e *QuestionEdit) (string, error) {
	if e == nil || strings.TrimSpace(e.Question.Text) == "" {
		return "", NewInvalidError("question text required")
	}
	switch e.Question.Type {
	case models.QuestionSelectSingle, models.QuestionSelectMulti:
		if len(e.Question.Options) == 0 {
			return "", NewInvalidError("select questions require options")
		}
	case models.QuestionTable:
		if len(e.Question.Columns) == 0 {
			return "", NewInvalidError("table questions require columns")
		}
	}
	p := s.store.GetPillar(e.PillarID)
	if p == nil {
		return "", NewNotFoundError("pillar not found")
	}
	nb := findNotebook(p, e.NotebookID)
	if nb == nil {
		return "", NewNotFoundError("notebook not found")
	}
	var content *models.FrameworkContent
	for i := range nb.Contents {
		if nb.Contents[i].ID == e.ContentID {
			content = &nb.Contents[i]
			break
		}
	}
	if content == nil {
		return "", NewNotFoundError("content not found")
	}
	q := e.Question
	if q.ID == "" {
		q.ID = s.idGen()
		content.Questions = append(content.Questions, q)
		s.store.PutPillar(p)
		return q.ID, nil
	}
	for i := range content.Questions {
		if content.Questions[i].ID == q.ID {
			content.Questions[i] = q
			s.store.PutPillar(p)
			return q.ID, nil
		}
	}
	return "", NewNotFoundError("question not found")
}

// Delete removes a node (and, for container levels, its subtree). The path
// carries the ancestor ids needed to locate the node.
func (s *FrameworkService) Delete(kind EditKind, pillarID, notebookID, contentID, id string) error {
	switch kind {
	case EditPillar:
		if !s.store.DeletePillar(id) {
			return NewNotFoundError("pillar not found")
		}
		return nil
	case EditNotebook:
		p := s.store.GetPillar(pillarID)
		if p == nil {
			return NewNotFoundError("pillar not found")
		}
		for i := range p.Notebooks {
			if p.Notebooks[i].ID == id {
				p.Notebooks = append(p.Notebooks[:i], p.Notebooks[i+1:]...)
				s.store.PutPillar(p)
				return nil
			}
		}
		return NewNotFoundError("notebook not found")
	case EditContent:
		p := s.store.GetPillar(pillarID)
		if p == nil {
			return NewNotFoundError("pillar not found")
		}
		nb := findNotebook(p, notebookID)
		if nb == nil {
			return NewNotFoundError("notebook not found")
		}
		for i := range nb.Contents {
			if nb.Contents[i].ID == id {
				nb.Contents = append(nb.Contents[:i], nb.Contents[i+1:]...)
				s.store.PutPillar(p)
				return nil
			}
		}
		return NewNotFoundError("content not found")
	case EditQuestion:
		p := s.store.GetPillar(pillarID)
		if p == nil {
			return NewNotFoundError("pillar not found")
		}
		nb := findNotebook(p, notebookID)
		if nb == nil {
			return NewNotFoundError("notebook not found")
		}
		for ci := range nb.Contents {
			if nb.Contents[ci].ID != contentID {
				continue
			}
			qs := nb.Contents[ci].Questions
			for i := range qs {
				if qs[i].ID == id {
					nb.Contents[ci].Questions = append(qs[:i], qs[i+1:]...)
					s.store.PutPillar(p)
					return nil
				}
			}
			return NewNotFoundError("question not found")
		}
		return NewNotFoundError("content not found")
	default:
		return NewInvalidError("unknown edit kind")
	}
}

func findNotebook(p *models.Pillar, id string) *models.Notebook {
	for i := range p.Notebooks {
		if p.Notebooks[i].ID == id {
			return &p.Notebooks[i]
		}
	}
	return nil
}
