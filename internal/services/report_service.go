package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// ReportStore feeds the reporting views.
type ReportStore interface {
	ListAllIndicators() []*models.Indicator
	ListResponses() []*models.Response
}

// DimensionPerformance aggregates response progress per GRI dimension.
type DimensionPerformance struct {
	Dimension models.Dimension `json:"dimension"`
	Total     int              `json:"total"`
	Responded int              `json:"responded"`
	Approved  int              `json:"approved"`
	Gaps      int              `json:"gaps"`
	MeanScore float64          `json:"mean_score"`
}

type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Dimensions computes per-dimension progress over the whole catalog.
func (s *ReportService) Dimensions() []DimensionPerformance {
	byDim := map[models.Dimension]*DimensionPerformance{}
	order := []models.Dimension{models.DimGovernance, models.DimEconomic, models.DimEnvironmental, models.DimSocial}
	for _, d := range order {
		byDim[d] = &DimensionPerformance{Dimension: d}
	}

	responses := map[string]*models.Response{}
	for _, r := range s.store.ListResponses() {
		responses[r.IndicatorCode] = r
	}

	scoreSums := map[models.Dimension]int{}
	scoreCounts := map[models.Dimension]int{}
	for _, ind := range s.store.ListAllIndicators() {
		perf, ok := byDim[ind.Dimension]
		if !ok {
			continue
		}
		perf.Total++
		r, ok := responses[ind.Code]
		if !ok {
			continue
		}
		switch r.Status {
		case models.StatusSubmitted:
			perf.Responded++
		case models.StatusApproved:
			perf.Responded++
			perf.Approved++
		case models.StatusGapOpen:
			perf.Gaps++
		}
		if ScoreApplies(r.Option) && r.Status != "" && r.Status != models.StatusDraft {
			scoreSums[ind.Dimension] += r.SkouloudisScore
			scoreCounts[ind.Dimension]++
		}
	}
	out := make([]DimensionPerformance, 0, len(order))
	for _, d := range order {
		perf := *byDim[d]
		if n := scoreCounts[d]; n > 0 {
			perf.MeanScore = float64(scoreSums[d]) / float64(n)
		}
		out = append(out, perf)
	}
	return out
}

// ScoreString renders the overall GRI index as a percentage string, the form
// the dashboard and the insight prompt expect (e.g. "78.5").
func (s *ReportService) ScoreString() string {
	dims := s.Dimensions()
	total, responded := 0, 0
	for _, d := range dims {
		total += d.Total
		responded += d.Responded
	}
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(responded)/float64(total)*100)
}

// GapCount counts responses currently in the gap side path.
func (s *ReportService) GapCount() int {
	n := 0
	for _, r := range s.store.ListResponses() {
		if r.Status == models.StatusGapOpen {
			n++
		}
	}
	return n
}

// ExportResponsesCSV renders every answered question as one long-format row.
func (s *ReportService) ExportResponsesCSV() ([]byte, error) {
	rs := s.store.ListResponses()
	sort.Slice(rs, func(i, j int) bool { return rs[i].IndicatorCode < rs[j].IndicatorCode })

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"indicator_code", "option", "status", "question_id", "answer", "skouloudis_score", "last_updated"})
	for _, r := range rs {
		qids := make([]string, 0, len(r.Answers))
		for qid := range r.Answers {
			qids = append(qids, qid)
		}
		sort.Strings(qids)
		if len(qids) == 0 {
			qids = []string{""}
		}
		for _, qid := range qids {
			rec := []string{
				r.IndicatorCode,
				string(r.Option),
				string(r.Status),
				qid,
				r.Answers[qid],
				strconv.Itoa(r.SkouloudisScore),
				formatTime(r.LastUpdated),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportGapsCSV renders the current gap summaries.
func ExportGapsCSV(gaps []models.GapSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"indicator_code", "title", "department", "responsible", "days_to_deadline", "criticality"})
	for _, g := range gaps {
		rec := []string{
			g.IndicatorCode,
			g.Title,
			g.Department,
			g.Responsible,
			strconv.Itoa(g.DaysToDeadline),
			string(g.Criticality),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
