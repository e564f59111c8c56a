package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// memoryStore keeps everything in maps behind one RWMutex. Collections that
// have a meaningful order carry an explicit ordering slice; maps alone do
// not preserve insertion order.
type memoryStore struct {
	mu sync.RWMutex

	indicators map[string]*models.Indicator
	indOrder   []string

	responses map[string]*models.Response

	respondents map[string]*models.Respondent

	notifications []*models.Notification

	pillars     map[string]*models.Pillar
	pillarOrder []string

	projects  map[string]*models.ImpactProject
	projOrder []string

	users map[string]*models.UserProfile
}

var _ Store = (*memoryStore)(nil)

func NewMemoryStore() Store {
	return &memoryStore{
		indicators:  map[string]*models.Indicator{},
		responses:   map[string]*models.Response{},
		respondents: map[string]*models.Respondent{},
		pillars:     map[string]*models.Pillar{},
		projects:    map[string]*models.ImpactProject{},
		users:       map[string]*models.UserProfile{},
	}
}

// Indicators.

func (m *memoryStore) AddIndicator(ind *models.Indicator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.indicators[ind.Code]; !ok {
		m.indOrder = append(m.indOrder, ind.Code)
	}
	m.indicators[ind.Code] = ind
}

func (m *memoryStore) GetIndicator(code string) *models.Indicator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indicators[code]
}

func (m *memoryStore) ListIndicators(fw models.Framework) []*models.Indicator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Indicator, 0, len(m.indOrder))
	for _, code := range m.indOrder {
		ind := m.indicators[code]
		if ind.Framework == fw {
			out = append(out, ind)
		}
	}
	return out
}

func (m *memoryStore) ListAllIndicators() []*models.Indicator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Indicator, 0, len(m.indOrder))
	for _, code := range m.indOrder {
		out = append(out, m.indicators[code])
	}
	return out
}

// Responses.

func (m *memoryStore) GetResponse(code string) *models.Response {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.responses[code]; ok {
		return r.Clone()
	}
	return nil
}

func (m *memoryStore) PutResponse(r *models.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[r.IndicatorCode] = r.Clone()
}

func (m *memoryStore) ListResponses() []*models.Response {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Response, 0, len(m.responses))
	for _, r := range m.responses {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IndicatorCode < out[j].IndicatorCode })
	return out
}

// Respondents.

func (m *memoryStore) AddRespondent(r *models.Respondent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.respondents[r.ID] = r
}

func (m *memoryStore) GetRespondent(id string) *models.Respondent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.respondents[id]
}

func (m *memoryStore) UpdateRespondent(r *models.Respondent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.respondents[r.ID]; !ok {
		return false
	}
	m.respondents[r.ID] = r
	return true
}

func (m *memoryStore) DeleteRespondent(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.respondents[id]; !ok {
		return false
	}
	delete(m.respondents, id)
	return true
}

func (m *memoryStore) ListRespondents() []*models.Respondent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Respondent, 0, len(m.respondents))
	for _, r := range m.respondents {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Notifications.

func (m *memoryStore) AddNotification(n *models.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append([]*models.Notification{n}, m.notifications...)
}

func (m *memoryStore) ListNotifications() []*models.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

func (m *memoryStore) MarkNotificationRead(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}

func (m *memoryStore) MarkAllNotificationsRead() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.notifications {
		if !n.Read {
			n.Read = true
			count++
		}
	}
	return count
}

// Pillars.

func (m *memoryStore) ListPillars() []*models.Pillar {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Pillar, 0, len(m.pillarOrder))
	for _, id := range m.pillarOrder {
		out = append(out, m.pillars[id])
	}
	return out
}

func (m *memoryStore) GetPillar(id string) *models.Pillar {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pillars[id]
}

func (m *memoryStore) PutPillar(p *models.Pillar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pillars[p.ID]; !ok {
		m.pillarOrder = append(m.pillarOrder, p.ID)
	}
	m.pillars[p.ID] = p
}

func (m *memoryStore) DeletePillar(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pillars[id]; !ok {
		return false
	}
	delete(m.pillars, id)
	for i, pid := range m.pillarOrder {
		if pid == id {
			m.pillarOrder = append(m.pillarOrder[:i], m.pillarOrder[i+1:]...)
			break
		}
	}
	return true
}

// Projects.

func (m *memoryStore) AddProject(p *models.ImpactProject) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		m.projOrder = append(m.projOrder, p.ID)
	}
	m.projects[p.ID] = p
}

func (m *memoryStore) GetProject(id string) *models.ImpactProject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.projects[id]
}

func (m *memoryStore) UpdateProject(p *models.ImpactProject) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return false
	}
	m.projects[p.ID] = p
	return true
}

func (m *memoryStore) ListProjects(inst models.InstitutionID) []*models.ImpactProject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.ImpactProject, 0, len(m.projOrder))
	for _, id := range m.projOrder {
		p := m.projects[id]
		if inst == "" || p.InstitutionID == inst {
			out = append(out, p)
		}
	}
	return out
}

// Users.

func (m *memoryStore) AddUser(u *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memoryStore) GetUser(id string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *memoryStore) FindUserByEmail(email string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) ListUsers() []*models.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.UserProfile, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
