package services

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type stubReportStore struct {
	indicators []*models.Indicator
	responses  []*models.Response
}

func (s *stubReportStore) ListAllIndicators() []*models.Indicator { return s.indicators }

func (s *stubReportStore) ListResponses() []*models.Response { return s.responses }

func reportFixture() *stubReportStore {
	return &stubReportStore{
		indicators: []*models.Indicator{
			{Code: "302-1", Dimension: models.DimEnvironmental},
			{Code: "305-1", Dimension: models.DimEnvironmental},
			{Code: "303-1", Dimension: models.DimEnvironmental},
			{Code: "401-1", Dimension: models.DimSocial},
			{Code: "404-1", Dimension: models.DimSocial},
			{Code: "201-1", Dimension: models.DimEconomic},
			{Code: "205-2", Dimension: models.DimGovernance},
		},
		responses: []*models.Response{
			{IndicatorCode: "302-1", Option: models.OptionAnswerNow, Status: models.StatusApproved, SkouloudisScore: 4},
			{IndicatorCode: "305-1", Option: models.OptionAnswerNow, Status: models.StatusSubmitted, SkouloudisScore: 2},
			{IndicatorCode: "303-1", Option: models.OptionNoData, Status: models.StatusGapOpen, SkouloudisScore: 1},
			{IndicatorCode: "401-1", Option: models.OptionAnswerNow, Status: models.StatusDraft, SkouloudisScore: 3},
			{IndicatorCode: "201-1", Option: models.OptionDelegate, Status: models.StatusSubmitted},
		},
	}
}

func TestDimensionsAggregation(t *testing.T) {
	svc := NewReportService(reportFixture())

	dims := svc.Dimensions()
	if len(dims) != 4 {
		t.Fatalf("dims = %d, want 4 in fixed order", len(dims))
	}
	want := []DimensionPerformance{
		{Dimension: models.DimGovernance, Total: 1},
		{Dimension: models.DimEconomic, Total: 1, Responded: 1},
		{Dimension: models.DimEnvironmental, Total: 3, Responded: 2, Approved: 1, Gaps: 1, MeanScore: 7.0 / 3.0},
		{Dimension: models.DimSocial, Total: 2},
	}
	if !reflect.DeepEqual(dims, want) {
		t.Fatalf("dims = %+v\nwant %+v", dims, want)
	}
}

func TestScoreStringAndGapCount(t *testing.T) {
	svc := NewReportService(reportFixture())

	// 3 responded out of 7 catalog indicators.
	if got := svc.ScoreString(); got != "42.9" {
		t.Fatalf("score = %s, want 42.9", got)
	}
	if got := svc.GapCount(); got != 1 {
		t.Fatalf("gaps = %d, want 1", got)
	}

	empty := NewReportService(&stubReportStore{})
	if got := empty.ScoreString(); got != "0.0" {
		t.Fatalf("empty score = %s", got)
	}
}

func TestExportResponsesCSV(t *testing.T) {
	stamp := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	store := &stubReportStore{
		responses: []*models.Response{
			{
				IndicatorCode: "305-1", Option: models.OptionNoData, Status: models.StatusGapOpen,
				SkouloudisScore: 1, LastUpdated: stamp,
			},
			{
				IndicatorCode: "302-1", Option: models.OptionAnswerNow, Status: models.StatusApproved,
				Answers: map[string]string{"q2": "Sim", "q1": "1250"}, SkouloudisScore: 3, LastUpdated: stamp,
			},
		},
	}
	svc := NewReportService(store)

	out, err := svc.ExportResponsesCSV()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]string{
		{"indicator_code", "option", "status", "question_id", "answer", "skouloudis_score", "last_updated"},
		{"302-1", "ANSWER_NOW", "APPROVED", "q1", "1250", "3", "2025-07-01T10:00:00Z"},
		{"302-1", "ANSWER_NOW", "APPROVED", "q2", "Sim", "3", "2025-07-01T10:00:00Z"},
		{"305-1", "NO_DATA", "GAP_OPEN", "", "", "1", "2025-07-01T10:00:00Z"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v\nwant %v", rows, want)
	}
}

func TestExportGapsCSV(t *testing.T) {
	out, err := ExportGapsCSV([]models.GapSummary{
		{IndicatorCode: "201-1", Title: "Valor econômico", Department: "Financeiro", Responsible: "Ana", DaysToDeadline: -30, Criticality: models.PriorityHigh},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if !reflect.DeepEqual(rows[1], []string{"201-1", "Valor econômico", "Financeiro", "Ana", "-30", "HIGH"}) {
		t.Fatalf("row = %v", rows[1])
	}
}
