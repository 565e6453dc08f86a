package organization

import "testing"

func TestWouldCreateCycleSelfParent(t *testing.T) {
	if !WouldCreateCycle(map[string]string{}, "d1", "d1") {
		t.Fatal("expected self-parent to be a cycle")
	}
}

func TestWouldCreateCycleDirect(t *testing.T) {
	// d1 is parent of d2; making d1 a child of d2 closes the loop.
	parents := map[string]string{"d2": "d1"}
	if !WouldCreateCycle(parents, "d1", "d2") {
		t.Fatal("expected direct cycle to be detected")
	}
}

func TestWouldCreateCycleDeep(t *testing.T) {
	// chain d4 -> d3 -> d2 -> d1
	parents := map[string]string{"d4": "d3", "d3": "d2", "d2": "d1"}
	if !WouldCreateCycle(parents, "d1", "d4") {
		t.Fatal("expected deep cycle to be detected")
	}
	if WouldCreateCycle(parents, "d4", "d1") {
		t.Fatal("reparenting a leaf under the root is not a cycle")
	}
}

func TestWouldCreateCycleUnrelated(t *testing.T) {
	parents := map[string]string{"d2": "d1", "d4": "d3"}
	if WouldCreateCycle(parents, "d2", "d3") {
		t.Fatal("unrelated subtrees should not report a cycle")
	}
	if WouldCreateCycle(parents, "d2", "") {
		t.Fatal("clearing the parent is never a cycle")
	}
}

func TestBuildHierarchy(t *testing.T) {
	departments := []Department{
		{ID: "eng", Name: "Engineering", Code: "ENG", ManagerID: "emp-1"},
		{ID: "plat", Name: "Platform", Code: "PLT", ParentID: "eng"},
		{ID: "apps", Name: "Applications", Code: "APP", ParentID: "eng"},
		{ID: "hr", Name: "People", Code: "HR"},
	}
	managers := map[string]ManagerSummary{
		"emp-1": {ID: "emp-1", Name: "Asha Rao"},
	}

	roots := BuildHierarchy(departments, managers)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Name != "Engineering" || roots[1].Name != "People" {
		t.Fatalf("unexpected root order: %s, %s", roots[0].Name, roots[1].Name)
	}
	eng := roots[0]
	if eng.Manager == nil || eng.Manager.Name != "Asha Rao" {
		t.Fatalf("expected manager summary on Engineering, got %+v", eng.Manager)
	}
	if len(eng.Children) != 2 {
		t.Fatalf("expected 2 children under Engineering, got %d", len(eng.Children))
	}
	if eng.Children[0].Name != "Applications" || eng.Children[1].Name != "Platform" {
		t.Fatalf("children not sorted by name: %s, %s", eng.Children[0].Name, eng.Children[1].Name)
	}
}

func TestBuildHierarchyOrphanBecomesRoot(t *testing.T) {
	departments := []Department{
		{ID: "d1", Name: "Orphan", Code: "ORP", ParentID: "missing"},
	}
	roots := BuildHierarchy(departments, nil)
	if len(roots) != 1 || roots[0].ID != "d1" {
		t.Fatalf("expected orphan to surface as root, got %+v", roots)
	}
}
