package api

import (
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// Store is the persistence boundary for the HTTP layer. The in-memory
// implementation below is the only one today; the interface keeps the
// handlers and services testable against stubs and leaves room for a real
// backend later.
type Store interface {
	// Indicator catalog, seeded at startup and read-only afterwards.
	AddIndicator(ind *models.Indicator)
	GetIndicator(code string) *models.Indicator
	ListIndicators(fw models.Framework) []*models.Indicator
	ListAllIndicators() []*models.Indicator

	// Responses, keyed by indicator code.
	GetResponse(code string) *models.Response
	PutResponse(r *models.Response)
	ListResponses() []*models.Response

	// Respondent roster.
	AddRespondent(r *models.Respondent)
	GetRespondent(id string) *models.Respondent
	UpdateRespondent(r *models.Respondent) bool
	DeleteRespondent(id string) bool
	ListRespondents() []*models.Respondent

	// Notification inbox, newest first.
	AddNotification(n *models.Notification)
	ListNotifications() []*models.Notification
	MarkNotificationRead(id string) bool
	MarkAllNotificationsRead() int

	// Editable framework hierarchy.
	ListPillars() []*models.Pillar
	GetPillar(id string) *models.Pillar
	PutPillar(p *models.Pillar)
	DeletePillar(id string) bool

	// Impact projects.
	AddProject(p *models.ImpactProject)
	GetProject(id string) *models.ImpactProject
	UpdateProject(p *models.ImpactProject) bool
	ListProjects(inst models.InstitutionID) []*models.ImpactProject

	// User accounts.
	AddUser(u *models.UserProfile) error
	GetUser(id string) (*models.UserProfile, error)
	FindUserByEmail(email string) (*models.UserProfile, error)
	ListUsers() []*models.UserProfile
}
