package organization

import "sort"

// WouldCreateCycle reports whether setting proposedParentID as the parent of
// departmentID would make departmentID its own ancestor. parents maps a
// department id to its current parent id ("" for roots). Bounded upward
// walk, O(depth); the visited set guards against pre-existing bad data.
func WouldCreateCycle(parents map[string]string, departmentID, proposedParentID string) bool {
	if proposedParentID == "" {
		return false
	}
	if departmentID == proposedParentID {
		return true
	}

	visited := make(map[string]bool, len(parents))
	current := proposedParentID
	for current != "" {
		if current == departmentID {
			return true
		}
		if visited[current] {
			return true
		}
		visited[current] = true
		current = parents[current]
	}
	return false
}

// BuildHierarchy assembles the department forest from a flat org-scoped
// slice. Departments whose parent is missing from the slice surface as
// roots. Children are ordered by name for stable output.
func BuildHierarchy(departments []Department, managers map[string]ManagerSummary) []*DepartmentNode {
	nodes := make(map[string]*DepartmentNode, len(departments))
	for _, dep := range departments {
		node := &DepartmentNode{
			ID:       dep.ID,
			Name:     dep.Name,
			Code:     dep.Code,
			Children: []*DepartmentNode{},
		}
		if manager, ok := managers[dep.ManagerID]; ok && dep.ManagerID != "" {
			m := manager
			node.Manager = &m
		}
		nodes[dep.ID] = node
	}

	var roots []*DepartmentNode
	for _, dep := range departments {
		node := nodes[dep.ID]
		if dep.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[dep.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	var sortNodes func([]*DepartmentNode)
	sortNodes = func(list []*DepartmentNode) {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, node := range list {
			sortNodes(node.Children)
		}
	}
	sortNodes(roots)
	return roots
}
