package models

import "time"

// Project is a budgeted piece of work owned by a single user.
type Project struct {
	// ID is the unique identifier for the project.
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Budget is the planned spend. Zero means no budget has been set yet,
	// which is not the same as an exhausted budget.
	Budget float64 `json:"budget"`

	// Category is one of Categories.
	Category string `json:"category"`

	// Services are the itemized costs charged against the budget,
	// in insertion order.
	Services []Service `json:"services"`

	Completed bool `json:"completed"`

	// UserID is the owning user. Set at creation and never changed.
	UserID string `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service is a single cost line attached to a project.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	ProjectID   string    `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectInput is the creation form for a project.
type ProjectInput struct {
	Name        string
	Description string
	Category    string
	Budget      float64
}

// ProjectPatch names the project fields that may change after creation.
// Nil fields are left untouched.
type ProjectPatch struct {
	Budget    *float64
	Completed *bool
}

// ServiceInput is the form for a new service line.
type ServiceInput struct {
	Name        string
	Cost        float64
	Description string
}

// Categories lists the project categories offered by the app.
var Categories = []string{
	"desenvolvimento",
	"design",
	"marketing",
	"consultoria",
	"construcao",
	"eventos",
	"educacao",
	"outros",
}

// StatusFilter selects projects by completion state.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterInProgress StatusFilter = "in-progress"
	FilterCompleted  StatusFilter = "completed"
)

// ParseStatusFilter maps user input to a StatusFilter. Empty input means all.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterInProgress:
		return FilterInProgress, true
	case FilterCompleted:
		return FilterCompleted, true
	}
	return "", false
}

// Matches reports whether the project passes the filter.
func (f StatusFilter) Matches(p *Project) bool {
	switch f {
	case FilterInProgress:
		return !p.Completed
	case FilterCompleted:
		return p.Completed
	default:
		return true
	}
}
