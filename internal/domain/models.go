package domain

import "strconv"

// Option is a single selectable record as delivered by the backend.
// Fields are addressed by name; which field is the identity and which is
// the label is decided by whoever renders it.
type Option map[string]any

// Source names an option list the backend can provide
type Source string

const (
	SourceEmployees Source = "employees"
	SourceBranches  Source = "branches"
	SourceStatuses  Source = "statuses"
)

// AllSources lists the sources in the order the form shows them
var AllSources = []Source{SourceEmployees, SourceBranches, SourceStatuses}

// Branch represents a warehouse branch
type Branch struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Used     int    `json:"used,omitempty"`
}

// CapacityPercent returns how full the branch is, 0 when capacity is unknown
func (b Branch) CapacityPercent() int {
	if b.Capacity <= 0 {
		return 0
	}
	return b.Used * 100 / b.Capacity
}

// Option converts the branch to a selectable record
func (b Branch) Option() Option {
	return Option{
		"id":       b.ID,
		"name":     b.Name,
		"location": b.Location,
		"capacity": b.Capacity,
		"used":     b.Used,
	}
}

// Employee represents a user that can be assigned to a branch
type Employee struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Option converts the employee to a selectable record
func (e Employee) Option() Option {
	return Option{
		"id":    e.ID,
		"name":  e.Name,
		"email": e.Email,
		"role":  e.Role,
	}
}

// AssignmentStatus is the lifecycle state of an assignment
type AssignmentStatus string

const (
	StatusActive    AssignmentStatus = "active"
	StatusPending   AssignmentStatus = "pending"
	StatusCompleted AssignmentStatus = "completed"
	StatusCancelled AssignmentStatus = "cancelled"
)

// AssignmentStatuses lists every status in display order
var AssignmentStatuses = []AssignmentStatus{StatusActive, StatusPending, StatusCompleted, StatusCancelled}

// Label returns the human-readable status name
func (s AssignmentStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Option converts the status to a selectable record
func (s AssignmentStatus) Option() Option {
	return Option{"id": string(s), "name": s.Label()}
}

// Assignment links an employee to a branch
type Assignment struct {
	ID         int              `json:"id,omitempty"`
	EmployeeID int              `json:"employee_id"`
	BranchID   int              `json:"branch_id"`
	Status     AssignmentStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
}

// NewAssignment builds an assignment from the string keys a form produces
func NewAssignment(employeeKey, branchKey, statusKey string) (Assignment, error) {
	employeeID, err := strconv.Atoi(employeeKey)
	if err != nil {
		return Assignment{}, err
	}
	branchID, err := strconv.Atoi(branchKey)
	if err != nil {
		return Assignment{}, err
	}
	status := AssignmentStatus(statusKey)
	if status == "" {
		status = StatusPending
	}
	return Assignment{
		EmployeeID: employeeID,
		BranchID:   branchID,
		Status:     status,
	}, nil
}
