package services

import (
	"strings"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// Workflow errors shared by responses and impact projects.
var (
	ErrOptionRequired   = NewInvalidError("a response option must be selected before submitting")
	ErrAlreadyApproved  = NewConflictError("an approved record is read-only")
	ErrNotSubmitted     = NewConflictError("only submitted records can be reviewed")
	ErrFeedbackRequired = NewInvalidError("feedback is required when requesting changes")
	ErrApproverRequired = NewForbiddenError("approval permission required")
	ErrNotAGap          = NewConflictError("record is not in the gap side path")
)

// Submit moves a response into SUBMITTED. It is valid from an empty status,
// DRAFT, or CHANGES_REQUESTED (resubmission), and requires an option.
// APPROVED is terminal for the owner.
func Submit(resp *models.Response) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if resp.Option == "" {
		return ErrOptionRequired
	}
	switch resp.Status {
	case "", models.StatusDraft, models.StatusChangesRequested:
		resp.Status = models.StatusSubmitted
		return nil
	case models.StatusSubmitted:
		// submitting twice is a no-op
		return nil
	case models.StatusApproved:
		return ErrAlreadyApproved
	default:
		return NewConflictError("cannot submit from status " + string(resp.Status))
	}
}

// Approve moves SUBMITTED to APPROVED and clears any reviewer feedback.
func Approve(resp *models.Response, reviewer models.Permissions) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if !reviewer.CanApprove {
		return ErrApproverRequired
	}
	if resp.Status != models.StatusSubmitted {
		return ErrNotSubmitted
	}
	resp.Status = models.StatusApproved
	resp.Feedback = ""
	return nil
}

// RequestChanges moves SUBMITTED to CHANGES_REQUESTED and records the
// reviewer's non-empty feedback.
func RequestChanges(resp *models.Response, reviewer models.Permissions, feedback string) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if !reviewer.CanApprove {
		return ErrApproverRequired
	}
	if strings.TrimSpace(feedback) == "" {
		return ErrFeedbackRequired
	}
	if resp.Status != models.StatusSubmitted {
		return ErrNotSubmitted
	}
	resp.Status = models.StatusChangesRequested
	resp.Feedback = feedback
	return nil
}

// OpenGap enters the NO_DATA side path. Gaps bypass the approve/reject
// cycle; they only carry an action plan.
func OpenGap(resp *models.Response) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if resp.Option != models.OptionNoData {
		return NewConflictError("only NO_DATA responses open a gap")
	}
	if resp.Status == models.StatusApproved {
		return ErrAlreadyApproved
	}
	resp.Status = models.StatusGapOpen
	return nil
}

// ResolveGap closes an open gap.
func ResolveGap(resp *models.Response) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if resp.Status != models.StatusGapOpen {
		return ErrNotAGap
	}
	resp.Status = models.StatusGapResolved
	return nil
}

// Project workflow: the same machine minus the gap side path.

func SubmitProject(p *models.ImpactProject) error {
	if p == nil {
		return NewInvalidError("project required")
	}
	switch p.Status {
	case "", models.ProjectDraft, models.ProjectChangesRequested:
		p.Status = models.ProjectSubmitted
		return nil
	case models.ProjectSubmitted:
		return nil
	case models.ProjectApproved:
		return ErrAlreadyApproved
	default:
		return NewConflictError("cannot submit from status " + string(p.Status))
	}
}

func ApproveProject(p *models.ImpactProject, reviewer models.Permissions) error {
	if p == nil {
		return NewInvalidError("project required")
	}
	if !reviewer.CanApprove {
		return ErrApproverRequired
	}
	if p.Status != models.ProjectSubmitted {
		return ErrNotSubmitted
	}
	p.Status = models.ProjectApproved
	p.Feedback = ""
	return nil
}

func RequestProjectChanges(p *models.ImpactProject, reviewer models.Permissions, feedback string) error {
	if p == nil {
		return NewInvalidError("project required")
	}
	if !reviewer.CanApprove {
		return ErrApproverRequired
	}
	if strings.TrimSpace(feedback) == "" {
		return ErrFeedbackRequired
	}
	if p.Status != models.ProjectSubmitted {
		return ErrNotSubmitted
	}
	p.Status = models.ProjectChangesRequested
	p.Feedback = feedback
	return nil
}
