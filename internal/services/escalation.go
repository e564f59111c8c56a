package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// EscalationTier labels the severity of a deadline reminder.
type EscalationTier string

const (
	TierReminder   EscalationTier = "REMINDER"
	TierUrgent     EscalationTier = "URGENT"
	TierCritical   EscalationTier = "CRITICAL"
	TierEscalation EscalationTier = "ESCALATION"
)

// ReminderEntry is one immutable firing of the escalation rules.
type ReminderEntry struct {
	ID         string         `json:"id"`
	GapCode    string         `json:"gap_code"`
	Type       EscalationTier `json:"type"`
	Recipients []string       `json:"recipients"`
	Message    string         `json:"message"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ClassifyDeadline applies the reminder rule table to a gap's days-to-deadline.
//
// The table is exact-match for the first three tiers and a ceiling for the
// last one. Values like 5 or -15 intentionally fire nothing; do not collapse
// this into a monotonic range check, that changes behavior.
func ClassifyDeadline(days int) (EscalationTier, bool) {
	switch {
	case days == 7:
		return TierReminder, true
	case days == 0:
		return TierUrgent, true
	case days == -7:
		return TierCritical, true
	case days <= -30:
		return TierEscalation, true
	default:
		return "", false
	}
}

type GapSource interface {
	ListGaps() []models.GapSummary
}

// EscalationEngine runs the nightly/on-demand deadline sweep. The resulting
// log is replaced on every run, never accumulated across runs.
type EscalationEngine struct {
	mu      sync.Mutex
	source  GapSource
	log     []ReminderEntry
	lastRun time.Time
	now     func() time.Time
	idGen   func() string
}

func NewEscalationEngine(source GapSource) *EscalationEngine {
	return &EscalationEngine{
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
		idGen:  func() string { return shortID(8) },
	}
}

// RunSweep classifies every open gap into at most one tier and returns the
// fresh log.
func (e *EscalationEngine) RunSweep() []ReminderEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts := e.now()
	entries := []ReminderEntry{}
	for _, gap := range e.source.ListGaps() {
		tier, ok := ClassifyDeadline(gap.DaysToDeadline)
		if !ok {
			continue
		}
		entries = append(entries, ReminderEntry{
			ID:         e.idGen(),
			GapCode:    gap.IndicatorCode,
			Type:       tier,
			Recipients: recipientsFor(tier, gap),
			Message:    messageFor(tier, gap),
			Timestamp:  ts,
		})
	}
	e.log = entries
	e.lastRun = ts
	return append([]ReminderEntry(nil), entries...)
}

// Log returns a copy of the log produced by the most recent sweep.
func (e *EscalationEngine) Log() []ReminderEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ReminderEntry(nil), e.log...)
}

func (e *EscalationEngine) LastRun() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun
}

func recipientsFor(tier EscalationTier, gap models.GapSummary) []string {
	responsible := fmt.Sprintf("Responsável (%s)", gap.Responsible)
	switch tier {
	case TierReminder:
		return []string{responsible}
	case TierUrgent:
		return []string{responsible, "Gestor ASG"}
	case TierCritical:
		return []string{responsible, "Gestor ASG", "Diretor Executivo"}
	case TierEscalation:
		return []string{"Presidência", "Diretoria Executiva"}
	}
	return nil
}

func messageFor(tier EscalationTier, gap models.GapSummary) string {
	switch tier {
	case TierReminder:
		return fmt.Sprintf("Faltam 7 dias para resolver %s", gap.IndicatorCode)
	case TierUrgent:
		return fmt.Sprintf("Prazo para resolver %s venceu hoje", gap.IndicatorCode)
	case TierCritical:
		return fmt.Sprintf("⚠️ ATRASO: %s está 7 dias atrasado", gap.IndicatorCode)
	case TierEscalation:
		return "Gap crítico não resolvido há 30 dias"
	}
	return ""
}
