package organization

import "time"

type Department struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	ParentID       string    `json:"parentId"`
	ManagerID      string    `json:"managerId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Location struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ManagerSummary is the slim employee projection embedded in hierarchy nodes.
type ManagerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DepartmentNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Code     string            `json:"code"`
	Manager  *ManagerSummary   `json:"manager,omitempty"`
	Children []*DepartmentNode `json:"children"`
}
