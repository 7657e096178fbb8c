// Package api defines the messages exchanged by the costs.v1 RPC services.
// They travel as JSON; field names follow the browser app's storage layout.
package api

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	ProjectID   string    `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Category    string    `json:"category"`
	Services    []Service `json:"services"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectSummary carries the derived budget figures of one project.
type ProjectSummary struct {
	Budget       float64 `json:"budget"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	UsedPercent  float64 `json:"usedPercent"`
	ServiceCount int     `json:"serviceCount"`
	OverBudget   bool    `json:"overBudget"`
}

// Stats aggregates all of the caller's projects.
type Stats struct {
	Total      int     `json:"total"`
	InProgress int     `json:"inProgress"`
	Completed  int     `json:"completed"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
}

// AuthService messages.

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// ProjectService messages.

// ListProjectsRequest selects projects by status: "all" (or empty),
// "in-progress" or "completed".
type ListProjectsRequest struct {
	Filter string `json:"filter,omitempty"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type GetProjectRequest struct {
	ID string `json:"id"`
}

type GetProjectResponse struct {
	Project *Project        `json:"project"`
	Summary *ProjectSummary `json:"summary"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Budget      float64 `json:"budget"`
}

type CreateProjectResponse struct {
	Project *Project `json:"project"`
}

type UpdateProjectRequest struct {
	ID        string   `json:"id"`
	Budget    *float64 `json:"budget,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
}

type UpdateProjectResponse struct {
	Project *Project `json:"project"`
}

type DeleteProjectRequest struct {
	ID string `json:"id"`
}

type DeleteProjectResponse struct{}

type AddServiceRequest struct {
	ProjectID   string  `json:"projectId"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

type AddServiceResponse struct {
	Service *Service `json:"service"`
}

type RemoveServiceRequest struct {
	ServiceID string `json:"serviceId"`
}

type RemoveServiceResponse struct{}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats *Stats `json:"stats"`
}
