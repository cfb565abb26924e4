package service

import (
	"testing"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

func TestTreeAssembly(t *testing.T) {
	p := func(v int) *int { return &v }

	flat := []model.KnowledgeNode{
		{ID: 1, Name: "Science", NodeType: model.NodeTypeDomain},
		{ID: 2, Name: "Physics", NodeType: model.NodeTypeSubject, ParentID: p(1)},
		{ID: 3, Name: "Thermodynamics", NodeType: model.NodeTypeSection, ParentID: p(2)},
		{ID: 4, Name: "Maths", NodeType: model.NodeTypeDomain},
		{ID: 5, Name: "Orphan", NodeType: model.NodeTypeTopic, ParentID: p(99)},
	}

	roots := assembleTree(flat)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if roots[0].Name != "Science" || roots[1].Name != "Maths" {
		t.Errorf("unexpected root order: %s, %s", roots[0].Name, roots[1].Name)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Name != "Physics" {
		t.Fatal("Physics not nested under Science")
	}
	if len(roots[0].Children[0].Children) != 1 {
		t.Error("Thermodynamics not nested under Physics")
	}

	// A node pointing at a filtered-out parent is dropped, not promoted.
	for _, r := range roots {
		if r.Name == "Orphan" {
			t.Error("orphan node promoted to root")
		}
	}
}
