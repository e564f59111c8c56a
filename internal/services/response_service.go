package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// ResponseStore abstracts the keyed persistence used by ResponseService.
type ResponseStore interface {
	GetResponse(code string) *models.Response
	PutResponse(r *models.Response)
	ListResponses() []*models.Response
}

// IndicatorCatalog resolves catalog entries for validation and warnings.
type IndicatorCatalog interface {
	GetIndicator(code string) *models.Indicator
}

// Notifier receives workflow events. Optional; a nil notifier drops them.
type Notifier interface {
	Notify(n models.Notification)
}

var ErrIndicatorNotFound = NewNotFoundError("indicator not found")

// ResponseService owns the indicator response lifecycle: lazy creation,
// option switching, form edits with debounced auto-save, workflow
// transitions and contribution logging.
//
// Edits mutate an in-memory working copy per indicator; the copy is written
// to the store when the auto-save debounce fires or on explicit save,
// last-write-wins by indicator code.
type ResponseService struct {
	store    ResponseStore
	catalog  IndicatorCatalog
	notifier Notifier

	mu     sync.Mutex
	drafts map[string]*models.Response
	saver  *AutoSaver
	now    func() time.Time
}

// DefaultAutoSaveInterval is the debounce window applied to form edits.
const DefaultAutoSaveInterval = 30 * time.Second

func NewResponseService(store ResponseStore, catalog IndicatorCatalog, autoSaveInterval time.Duration) *ResponseService {
	if autoSaveInterval <= 0 {
		autoSaveInterval = DefaultAutoSaveInterval
	}
	s := &ResponseService{
		store:   store,
		catalog: catalog,
		drafts:  map[string]*models.Response{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.saver = NewAutoSaver(autoSaveInterval, s.persistDraft)
	return s
}

// SetNotifier wires workflow events into the notification inbox.
func (s *ResponseService) SetNotifier(n Notifier) { s.notifier = n }

// Stop cancels all pending auto-save timers.
func (s *ResponseService) Stop() { s.saver.Stop() }

// Open returns the working copy for an indicator, creating it lazily on
// first interaction with the standard reporting period prefilled.
func (s *ResponseService) Open(code string) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftLocked(code).Clone(), nil
}

func (s *ResponseService) draftLocked(code string) *models.Response {
	if d, ok := s.drafts[code]; ok {
		return d
	}
	if stored := s.store.GetResponse(code); stored != nil {
		d := stored.Clone()
		s.drafts[code] = d
		return d
	}
	d := &models.Response{
		IndicatorCode: code,
		Answers:       map[string]string{},
		PeriodStart:   "2025-01-01",
		PeriodEnd:     "2025-12-31",
	}
	s.drafts[code] = d
	return d
}

// Get returns the persisted record, or nil when the indicator was never
// touched.
func (s *ResponseService) Get(code string) *models.Response {
	return s.store.GetResponse(code)
}

func (s *ResponseService) List() []*models.Response {
	return s.store.ListResponses()
}

// SelectOption switches the active response strategy. Fields belonging to
// the previous option are retained, only hidden.
func (s *ResponseService) SelectOption(code string, option models.ResponseOption) (*models.Response, error) {
	switch option {
	case models.OptionAnswerNow, models.OptionDelegate, models.OptionNotMyArea, models.OptionNoData:
	default:
		return nil, NewInvalidError("unknown response option")
	}
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	if d.Status == models.StatusApproved {
		return nil, ErrAlreadyApproved
	}
	d.Option = option
	RecomputeGapScore(d)
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// FormPatch is a partial update to the option sub-forms. Nil fields are left
// untouched.
type FormPatch struct {
	PeriodStart         *string `json:"period_start,omitempty"`
	PeriodEnd           *string `json:"period_end,omitempty"`
	PeriodJustification *string `json:"period_justification,omitempty"`

	DelegatedTo      *string `json:"delegated_to,omitempty"`
	DelegationReason *string `json:"delegation_reason,omitempty"`

	RejectionReason *string `json:"rejection_reason,omitempty"`
	SuggestedArea   *string `json:"suggested_area,omitempty"`

	GapReason               *string         `json:"gap_reason,omitempty"`
	GapType                 *models.GapType `json:"gap_type,omitempty"`
	EstimatedResolutionDate *string         `json:"estimated_resolution_date,omitempty"`
	ActionPlan              *string         `json:"action_plan,omitempty"`

	EvidenceFiles []string `json:"evidence_files,omitempty"`
}

// Patch applies a partial form edit to the working copy and reschedules the
// auto-save debounce. Changing the action plan of a NO_DATA response
// recomputes the automatic gap score, overwriting any manual value.
func (s *ResponseService) Patch(code string, p FormPatch) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	if d.Status == models.StatusApproved {
		return nil, ErrAlreadyApproved
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&d.PeriodStart, p.PeriodStart)
	setStr(&d.PeriodEnd, p.PeriodEnd)
	setStr(&d.PeriodJustification, p.PeriodJustification)
	setStr(&d.DelegationReason, p.DelegationReason)
	setStr(&d.RejectionReason, p.RejectionReason)
	setStr(&d.SuggestedArea, p.SuggestedArea)
	setStr(&d.GapReason, p.GapReason)
	setStr(&d.EstimatedResolutionDate, p.EstimatedResolutionDate)
	if p.GapType != nil {
		d.GapType = *p.GapType
	}
	if p.EvidenceFiles != nil {
		d.EvidenceFiles = append([]string(nil), p.EvidenceFiles...)
	}
	if p.DelegatedTo != nil && *p.DelegatedTo != d.DelegatedTo {
		d.DelegatedTo = *p.DelegatedTo
		s.notify(models.Notification{
			Type:     models.NotifDelegation,
			Title:    "Delegação de indicador",
			Message:  fmt.Sprintf("O indicador %s foi delegado para %s", code, d.DelegatedTo),
			Priority: models.PriorityMedium,
			Meta:     models.NotificationMeta{IndicatorCode: code, TargetID: d.DelegatedTo},
		})
	}
	if p.ActionPlan != nil {
		d.ActionPlan = *p.ActionPlan
		RecomputeGapScore(d)
	}
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// SetAnswer records the official consolidated answer for one question. It is
// never derived from contributions; consolidation is a manual act.
func (s *ResponseService) SetAnswer(code, questionID, value string) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	if strings.TrimSpace(questionID) == "" {
		return nil, NewInvalidError("question id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	if d.Status == models.StatusApproved {
		return nil, ErrAlreadyApproved
	}
	if d.Answers == nil {
		d.Answers = map[string]string{}
	}
	d.Answers[questionID] = value
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// MetaPatch covers the spreadsheet-style bulk fields.
type MetaPatch struct {
	AssignedUserID *string          `json:"assigned_user_id,omitempty"`
	Deadline       *string          `json:"deadline,omitempty"`
	Priority       *models.Priority `json:"priority,omitempty"`
}

// UpdateMeta applies assignment/deadline/priority edits and persists
// immediately, as the spreadsheet view does. Assigning a user to an
// untouched row leaves it in DRAFT.
func (s *ResponseService) UpdateMeta(code string, p MetaPatch) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	if p.AssignedUserID != nil {
		d.AssignedUserID = *p.AssignedUserID
		if d.Status == "" {
			d.Status = models.StatusDraft
		}
	}
	if p.Deadline != nil {
		d.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	out := d.Clone()
	s.mu.Unlock()
	s.saver.Flush(code)
	return out, nil
}

// AddContributor invites another area to contribute; duplicates are ignored.
func (s *ResponseService) AddContributor(code, contributor string) (*models.Response, error) {
	if strings.TrimSpace(contributor) == "" {
		return nil, NewInvalidError("contributor required")
	}
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	for _, c := range d.Contributors {
		if c == contributor {
			return d.Clone(), nil
		}
	}
	d.Contributors = append(d.Contributors, contributor)
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// AddContribution appends a department's partial answers to the response's
// contribution log. The log is additive only: a new contribution never
// overwrites another department's earlier one, and nothing is ever merged
// into the official answers.
func (s *ResponseService) AddContribution(code string, c models.Contribution) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	if c.UserID == "" || len(c.Answers) == 0 {
		return nil, NewInvalidError("contribution user and answers required")
	}
	if c.Status == "" {
		c.Status = models.ContributionDraft
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	c.LastUpdated = s.now()
	d.Contributions = append(d.Contributions, c)
	out := d.Clone()
	s.mu.Unlock()
	s.saver.Flush(code)
	return out, nil
}

// SubmitContribution freezes a user's draft contribution. Submitted
// contributions are immutable snapshots.
func (s *ResponseService) SubmitContribution(code, userID string) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	found := false
	for i := range d.Contributions {
		c := &d.Contributions[i]
		if c.UserID == userID && c.Status == models.ContributionDraft {
			c.Status = models.ContributionSubmitted
			c.LastUpdated = s.now()
			found = true
		}
	}
	out := d.Clone()
	s.mu.Unlock()
	if !found {
		return nil, NewNotFoundError("no draft contribution for user")
	}
	s.saver.Flush(code)
	return out, nil
}

// SetManualScore records an approver's rubric classification.
func (s *ResponseService) SetManualScore(code string, role models.UserRole, score int) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	if err := ApplyManualScore(d, role, score); err != nil {
		return nil, err
	}
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// SetScoringCriteria stores the completeness checkboxes verbatim.
func (s *ResponseService) SetScoringCriteria(code string, c models.ScoringCriteria) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(code)
	d.ScoringCriteria = &c
	s.markDirtyLocked(code)
	return d.Clone(), nil
}

// SaveResult carries the persisted record plus soft validation warnings.
type SaveResult struct {
	Response *models.Response `json:"response"`
	Warnings []string         `json:"warnings,omitempty"`
}

// Save persists the working copy immediately, cancelling any pending
// auto-save, and promotes an unsubmitted response to SUBMITTED. Missing
// required answers are reported as warnings, never as errors.
func (s *ResponseService) Save(code string) (*SaveResult, error) {
	ind := s.catalog.GetIndicator(code)
	if ind == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	if d.Option == "" {
		s.mu.Unlock()
		return nil, ErrOptionRequired
	}
	if d.Status == models.StatusApproved {
		s.mu.Unlock()
		return nil, ErrAlreadyApproved
	}
	if d.Option == models.OptionNoData {
		if err := OpenGap(d); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	} else if d.Status == "" || d.Status == models.StatusDraft || d.Status == models.StatusChangesRequested {
		if err := Submit(d); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	warnings := requiredWarnings(ind, d)
	out := d.Clone()
	s.mu.Unlock()

	s.saver.Flush(code)
	return &SaveResult{Response: out, Warnings: warnings}, nil
}

// Approve applies the SUBMITTED -> APPROVED transition and persists.
func (s *ResponseService) Approve(code string, reviewer models.Permissions) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	if err := Approve(d, reviewer); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := d.Clone()
	s.mu.Unlock()
	s.saver.Flush(code)
	s.notify(models.Notification{
		Type:     models.NotifApproval,
		Title:    "Indicador aprovado",
		Message:  fmt.Sprintf("O indicador %s foi aprovado", code),
		Priority: models.PriorityLow,
		Meta:     models.NotificationMeta{IndicatorCode: code},
	})
	return out, nil
}

// RequestChanges applies SUBMITTED -> CHANGES_REQUESTED with the reviewer's
// feedback and persists.
func (s *ResponseService) RequestChanges(code string, reviewer models.Permissions, feedback string) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	if err := RequestChanges(d, reviewer, feedback); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := d.Clone()
	s.mu.Unlock()
	s.saver.Flush(code)
	s.notify(models.Notification{
		Type:     models.NotifApproval,
		Title:    "Ajustes solicitados",
		Message:  fmt.Sprintf("Ajustes solicitados no indicador %s", code),
		Priority: models.PriorityMedium,
		Meta:     models.NotificationMeta{IndicatorCode: code},
	})
	return out, nil
}

// ResolveGap closes the gap side path and persists.
func (s *ResponseService) ResolveGap(code string) (*models.Response, error) {
	if s.catalog.GetIndicator(code) == nil {
		return nil, ErrIndicatorNotFound
	}
	s.mu.Lock()
	d := s.draftLocked(code)
	if err := ResolveGap(d); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := d.Clone()
	s.mu.Unlock()
	s.saver.Flush(code)
	return out, nil
}

func (s *ResponseService) markDirtyLocked(code string) {
	s.saver.MarkDirty(code)
}

// persistDraft is the auto-save sink: it snapshots the working copy into the
// store, keeping SUBMITTED rows submitted and everything else in DRAFT.
func (s *ResponseService) persistDraft(code string) {
	s.mu.Lock()
	d, ok := s.drafts[code]
	if !ok {
		s.mu.Unlock()
		return
	}
	snap := d.Clone()
	s.mu.Unlock()

	if snap.Status == "" {
		snap.Status = models.StatusDraft
	}
	snap.LastUpdated = s.now()
	s.store.PutResponse(snap)

	s.mu.Lock()
	d.Status = snap.Status
	d.LastUpdated = snap.LastUpdated
	s.mu.Unlock()
}

func (s *ResponseService) notify(n models.Notification) {
	if s.notifier == nil {
		return
	}
	n.Timestamp = s.now()
	s.notifier.Notify(n)
}

// requiredWarnings lists required questions that are still unanswered.
// Required flags are advisory: saving proceeds regardless.
func requiredWarnings(ind *models.Indicator, resp *models.Response) []string {
	if resp.Option != models.OptionAnswerNow {
		return nil
	}
	var warnings []string
	for _, q := range ind.Questions {
		if !q.Required {
			continue
		}
		if strings.TrimSpace(resp.Answers[q.ID]) == "" {
			warnings = append(warnings, fmt.Sprintf("pergunta obrigatória sem resposta: %s", q.ID))
		}
	}
	return warnings
}
