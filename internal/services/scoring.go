package services

import (
	"unicode/utf8"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// RubricTier is one row of the Skouloudis 0-4 quality rubric.
type RubricTier struct {
	Score      int    `json:"score"`
	Label      string `json:"label"`
	Definition string `json:"definition"`
}

// SkouloudisRubric holds the five fixed tiers, in score order.
var SkouloudisRubric = []RubricTier{
	{0, "Não mencionado", "O tema não é mencionado no relatório."},
	{1, "Breve ou genérico", "Menção breve ou declaração genérica, sem detalhamento."},
	{2, "Cobertura mais detalhada", "Vai além do básico, com algum detalhe de política ou ação."},
	{3, "Cobertura extensiva", "Conteúdo profundo e detalhado sobre o tema."},
	{4, "Completa e sistemática", "Cobertura completa, sistemática e comparável entre períodos."},
}

// AutoGapScore computes the automatic score for a declared gap (NO_DATA):
// 1 if the action plan has more than 10 characters, otherwise 0.
func AutoGapScore(actionPlan string) int {
	if utf8.RuneCountInString(actionPlan) > 10 {
		return 1
	}
	return 0
}

// ScoreApplies reports whether the Skouloudis score is meaningful for the
// given response option. It is hidden for DELEGATE and NOT_MY_AREA.
func ScoreApplies(option models.ResponseOption) bool {
	return option == models.OptionAnswerNow || option == models.OptionNoData
}

// canScoreManually limits manual rubric classification to approver roles.
func canScoreManually(role models.UserRole) bool {
	return role == models.RoleASGManager || role == models.RolePresident
}

// ApplyManualScore records a manual rubric classification on an ANSWER_NOW
// response. NO_DATA responses are scored automatically and reject manual
// input; the other options carry no score at all.
func ApplyManualScore(resp *models.Response, role models.UserRole, score int) error {
	if resp == nil {
		return NewInvalidError("response required")
	}
	if score < 0 || score > 4 {
		return NewInvalidError("score must be between 0 and 4")
	}
	if !canScoreManually(role) {
		return NewForbiddenError("only ASG manager or president may score")
	}
	switch resp.Option {
	case models.OptionAnswerNow:
		resp.SkouloudisScore = score
		return nil
	case models.OptionNoData:
		return NewInvalidError("gap score is computed automatically")
	default:
		return NewInvalidError("score does not apply to this response option")
	}
}

// RecomputeGapScore re-evaluates the automatic gap score. It overwrites any
// previously set score whenever the option is NO_DATA, and reports whether
// the stored score changed.
func RecomputeGapScore(resp *models.Response) bool {
	if resp == nil || resp.Option != models.OptionNoData {
		return false
	}
	score := AutoGapScore(resp.ActionPlan)
	if score == resp.SkouloudisScore {
		return false
	}
	resp.SkouloudisScore = score
	return true
}
