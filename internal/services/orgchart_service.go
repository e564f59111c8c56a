package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// OrgChartService keeps the organization chart as an arena: a flat id index
// with parent/children references instead of a nested tree. Lookups and
// mutations are O(1) on the index; the nested shape is only materialized on
// export.
type OrgChartService struct {
	mu     sync.RWMutex
	nodes  map[string]*orgNode
	rootID string
	idGen  func() string
}

type orgNode struct {
	data     models.HierarchyNode
	parentID string
	children []string
}

func NewOrgChartService() *OrgChartService {
	return &OrgChartService{
		nodes: map[string]*orgNode{},
		idGen: func() string { return shortID(8) },
	}
}

// SetRoot installs (or replaces) the root node.
func (s *OrgChartService) SetRoot(n models.HierarchyNode) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = s.idGen()
	}
	n.Children = nil
	s.nodes[n.ID] = &orgNode{data: n}
	s.rootID = n.ID
	return n.ID
}

// Add inserts a node under parentID.
func (s *OrgChartService) Add(parentID string, n models.HierarchyNode) (string, error) {
	if strings.TrimSpace(n.Name) == "" {
		return "", NewInvalidError("node name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.nodes[parentID]
	if !ok {
		return "", NewNotFoundError("parent node not found")
	}
	if n.ID == "" {
		n.ID = s.idGen()
	}
	if _, exists := s.nodes[n.ID]; exists {
		return "", NewConflictError("node id already exists")
	}
	n.Children = nil
	s.nodes[n.ID] = &orgNode{data: n, parentID: parentID}
	parent.children = append(parent.children, n.ID)
	return n.ID, nil
}

// Update replaces a node's fields in place; parentage is unchanged.
func (s *OrgChartService) Update(n models.HierarchyNode) error {
	if n.ID == "" {
		return NewInvalidError("node id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.nodes[n.ID]
	if !ok {
		return NewNotFoundError("node not found")
	}
	n.Children = nil
	existing.data = n
	return nil
}

// Delete removes a node and its entire subtree. The root cannot be deleted.
func (s *OrgChartService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.nodes[id]
	if !ok {
		return NewNotFoundError("node not found")
	}
	if id == s.rootID {
		return NewConflictError("cannot delete the root node")
	}
	// detach from parent
	if parent, ok := s.nodes[node.parentID]; ok {
		for i, cid := range parent.children {
			if cid == id {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
	// collect subtree ids iteratively via the index
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n, ok := s.nodes[cur]; ok {
			stack = append(stack, n.children...)
			delete(s.nodes, cur)
		}
	}
	return nil
}

// Get returns a single node without children.
func (s *OrgChartService) Get(id string) (*models.HierarchyNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, NewNotFoundError("node not found")
	}
	data := n.data
	return &data, nil
}

// Tree materializes the nested hierarchy for display, children sorted by
// name for stable output.
func (s *OrgChartService) Tree() *models.HierarchyNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rootID == "" {
		return nil
	}
	return s.buildTree(s.rootID)
}

func (s *OrgChartService) buildTree(id string) *models.HierarchyNode {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := n.data
	ids := append([]string(nil), n.children...)
	sort.Slice(ids, func(i, j int) bool {
		return s.nodes[ids[i]].data.Name < s.nodes[ids[j]].data.Name
	})
	for _, cid := range ids {
		if child := s.buildTree(cid); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return &out
}

// Size reports how many nodes the chart currently holds.
func (s *OrgChartService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
