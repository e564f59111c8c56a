package services

import (
	"sort"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// GapStore provides the records a gap sweep is derived from.
type GapStore interface {
	ListResponses() []*models.Response
	GetIndicator(code string) *models.Indicator
	GetRespondent(id string) *models.Respondent
}

// GapService produces GapSummary views: derived, never authoritative. Every
// call recomputes days-to-deadline from the stored responses and the clock.
type GapService struct {
	store GapStore
	now   func() time.Time
}

func NewGapService(store GapStore) *GapService {
	return &GapService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// ListGaps summarizes every response currently in the gap side path.
// Responses without a deadline are reported with zero days remaining.
func (s *GapService) ListGaps() []models.GapSummary {
	today := truncateToDay(s.now())
	out := []models.GapSummary{}
	for _, r := range s.store.ListResponses() {
		if r.Status != models.StatusGapOpen {
			continue
		}
		ind := s.store.GetIndicator(r.IndicatorCode)
		if ind == nil {
			continue
		}
		g := models.GapSummary{
			ID:            "gap-" + r.IndicatorCode,
			IndicatorCode: r.IndicatorCode,
			Title:         ind.Title,
			Criticality:   criticalityFor(ind.MaterialityScore),
		}
		if resp := s.store.GetRespondent(r.AssignedUserID); resp != nil {
			g.Department = resp.Department
			g.Responsible = resp.Name
		}
		if r.Deadline != "" {
			if deadline, err := time.Parse("2006-01-02", r.Deadline); err == nil {
				g.DaysToDeadline = int(deadline.Sub(today).Hours() / 24)
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysToDeadline < out[j].DaysToDeadline })
	return out
}

// criticalityFor maps indicator materiality (1..5) to a gap criticality.
func criticalityFor(materiality int) models.Priority {
	switch {
	case materiality >= 5:
		return models.PriorityHigh
	case materiality >= 4:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
