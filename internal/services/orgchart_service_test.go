package services

import (
	"fmt"
	"testing"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

func newTestChart() *OrgChartService {
	s := NewOrgChartService()
	n := 0
	s.idGen = func() string {
		n++
		return fmt.Sprintf("node-%d", n)
	}
	return s
}

func TestOrgChartAddAndTree(t *testing.T) {
	s := newTestChart()
	root := s.SetRoot(models.HierarchyNode{ID: "1", Name: "Presidência", Type: models.NodeSector, Level: models.LevelPresidency})

	senac, err := s.Add(root, models.HierarchyNode{Name: "Senac", Type: models.NodeSector})
	if err != nil {
		t.Fatalf("add senac: %v", err)
	}
	if _, err := s.Add(root, models.HierarchyNode{Name: "Sesc", Type: models.NodeSector}); err != nil {
		t.Fatalf("add sesc: %v", err)
	}
	if _, err := s.Add(senac, models.HierarchyNode{Name: "TI", Type: models.NodeSector}); err != nil {
		t.Fatalf("add ti: %v", err)
	}

	tree := s.Tree()
	if tree == nil || tree.ID != "1" {
		t.Fatalf("tree root = %+v", tree)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root children = %d", len(tree.Children))
	}
	// Children sorted by name.
	if tree.Children[0].Name != "Senac" || tree.Children[1].Name != "Sesc" {
		t.Fatalf("order = %s, %s", tree.Children[0].Name, tree.Children[1].Name)
	}
	if len(tree.Children[0].Children) != 1 || tree.Children[0].Children[0].Name != "TI" {
		t.Fatalf("senac subtree = %+v", tree.Children[0].Children)
	}
}

func TestOrgChartPresetAndDuplicateIDs(t *testing.T) {
	s := newTestChart()
	root := s.SetRoot(models.HierarchyNode{ID: "1", Name: "Presidência"})

	id, err := s.Add(root, models.HierarchyNode{ID: "senac", Name: "Senac"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != "senac" {
		t.Fatalf("id = %s, want the preset id kept", id)
	}
	if _, err := s.Add(root, models.HierarchyNode{ID: "senac", Name: "Outro"}); err == nil {
		t.Fatal("duplicate id must conflict")
	}
	// Generated ids come from the injected generator.
	gen, err := s.Add(root, models.HierarchyNode{Name: "Sesc"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if gen != "node-1" {
		t.Fatalf("generated id = %s", gen)
	}
}

func TestOrgChartDeleteSubtree(t *testing.T) {
	s := newTestChart()
	root := s.SetRoot(models.HierarchyNode{ID: "1", Name: "Presidência"})
	senac, _ := s.Add(root, models.HierarchyNode{ID: "senac", Name: "Senac"})
	ti, _ := s.Add(senac, models.HierarchyNode{ID: "ti", Name: "TI"})
	s.Add(ti, models.HierarchyNode{ID: "dev", Name: "Desenvolvimento"})
	s.Add(root, models.HierarchyNode{ID: "sesc", Name: "Sesc"})

	if got := s.Size(); got != 5 {
		t.Fatalf("size = %d, want 5", got)
	}
	if err := s.Delete(senac); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// The whole branch is gone from the index.
	if got := s.Size(); got != 2 {
		t.Fatalf("size after delete = %d, want 2", got)
	}
	if _, err := s.Get("dev"); err == nil {
		t.Fatal("descendant must be removed with its ancestor")
	}
	tree := s.Tree()
	if len(tree.Children) != 1 || tree.Children[0].ID != "sesc" {
		t.Fatalf("tree after delete = %+v", tree.Children)
	}

	if err := s.Delete(root); err == nil {
		t.Fatal("root must not be deletable")
	}
	if err := s.Delete("missing"); err == nil {
		t.Fatal("unknown node must not be deletable")
	}
}

func TestOrgChartUpdateKeepsParentage(t *testing.T) {
	s := newTestChart()
	root := s.SetRoot(models.HierarchyNode{ID: "1", Name: "Presidência"})
	s.Add(root, models.HierarchyNode{ID: "rh", Name: "RH", Type: models.NodeSector})

	err := s.Update(models.HierarchyNode{ID: "rh", Name: "Recursos Humanos", Type: models.NodeSector, ResponsibleName: "Maria"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	n, err := s.Get("rh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if n.Name != "Recursos Humanos" || n.ResponsibleName != "Maria" {
		t.Fatalf("node = %+v", n)
	}
	tree := s.Tree()
	if len(tree.Children) != 1 || tree.Children[0].Name != "Recursos Humanos" {
		t.Fatal("renamed node must stay attached to its parent")
	}

	if err := s.Update(models.HierarchyNode{ID: "ghost", Name: "X"}); err == nil {
		t.Fatal("unknown node must not update")
	}
}
