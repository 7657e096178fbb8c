package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/costs/internal/calculator"
	"github.com/mmynk/costs/internal/middleware"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/pkg/api"
	"github.com/mmynk/costs/pkg/api/apiconnect"
)

// Projects is the project store as seen by the RPC layer.
type Projects interface {
	ListFiltered(ctx context.Context, userID string, filter models.StatusFilter) ([]models.Project, error)
	Get(ctx context.Context, userID, id string) (*models.Project, error)
	Create(ctx context.Context, userID string, in models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, userID, id string, patch models.ProjectPatch) (*models.Project, error)
	Remove(ctx context.Context, userID, id string) error
	AddService(ctx context.Context, userID, projectID string, in models.ServiceInput) (*models.Service, error)
	RemoveService(ctx context.Context, userID, serviceID string) error
}

// ProjectService implements the ProjectService RPC interface. Every call acts
// on behalf of the user placed in the context by the auth interceptor.
type ProjectService struct {
	projects Projects
	logger   *slog.Logger
}

var _ apiconnect.ProjectServiceHandler = (*ProjectService)(nil)

// NewProjectService creates a new project service.
func NewProjectService(projects Projects, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// ListProjects returns the caller's projects, optionally filtered by status.
func (s *ProjectService) ListProjects(ctx context.Context, req *connect.Request[api.ListProjectsRequest]) (*connect.Response[api.ListProjectsResponse], error) {
	filter, ok := models.ParseStatusFilter(req.Msg.Filter)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: unknown filter %q", models.ErrInvalidInput, req.Msg.Filter))
	}

	projects, err := s.projects.ListFiltered(ctx, middleware.GetUserID(ctx), filter)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Project, len(projects))
	for i := range projects {
		out[i] = *toAPIProject(&projects[i])
	}
	return connect.NewResponse(&api.ListProjectsResponse{Projects: out}), nil
}

// GetProject returns one project with its derived budget figures.
func (s *ProjectService) GetProject(ctx context.Context, req *connect.Request[api.GetProjectRequest]) (*connect.Response[api.GetProjectResponse], error) {
	p, err := s.projects.Get(ctx, middleware.GetUserID(ctx), req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetProjectResponse{
		Project: toAPIProject(p),
		Summary: toAPISummary(calculator.Summarize(p)),
	}), nil
}

// CreateProject creates a project owned by the caller.
func (s *ProjectService) CreateProject(ctx context.Context, req *connect.Request[api.CreateProjectRequest]) (*connect.Response[api.CreateProjectResponse], error) {
	userID := middleware.GetUserID(ctx)
	s.logger.Info("CreateProject request", "user_id", userID, "name", req.Msg.Name)

	p, err := s.projects.Create(ctx, userID, models.ProjectInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Category:    req.Msg.Category,
		Budget:      req.Msg.Budget,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateProjectResponse{Project: toAPIProject(p)}), nil
}

// UpdateProject changes the budget and/or completion state of a project.
func (s *ProjectService) UpdateProject(ctx context.Context, req *connect.Request[api.UpdateProjectRequest]) (*connect.Response[api.UpdateProjectResponse], error) {
	p, err := s.projects.Update(ctx, middleware.GetUserID(ctx), req.Msg.ID, models.ProjectPatch{
		Budget:    req.Msg.Budget,
		Completed: req.Msg.Completed,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateProjectResponse{Project: toAPIProject(p)}), nil
}

// DeleteProject removes a project and all of its services.
func (s *ProjectService) DeleteProject(ctx context.Context, req *connect.Request[api.DeleteProjectRequest]) (*connect.Response[api.DeleteProjectResponse], error) {
	if err := s.projects.Remove(ctx, middleware.GetUserID(ctx), req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteProjectResponse{}), nil
}

// AddService attaches a cost line to a project.
func (s *ProjectService) AddService(ctx context.Context, req *connect.Request[api.AddServiceRequest]) (*connect.Response[api.AddServiceResponse], error) {
	svc, err := s.projects.AddService(ctx, middleware.GetUserID(ctx), req.Msg.ProjectID, models.ServiceInput{
		Name:        req.Msg.Name,
		Cost:        req.Msg.Cost,
		Description: req.Msg.Description,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddServiceResponse{Service: toAPIService(svc)}), nil
}

// RemoveService deletes a cost line from whichever of the caller's projects
// holds it.
func (s *ProjectService) RemoveService(ctx context.Context, req *connect.Request[api.RemoveServiceRequest]) (*connect.Response[api.RemoveServiceResponse], error) {
	if err := s.projects.RemoveService(ctx, middleware.GetUserID(ctx), req.Msg.ServiceID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveServiceResponse{}), nil
}

// GetStats aggregates the caller's projects.
func (s *ProjectService) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	projects, err := s.projects.ListFiltered(ctx, middleware.GetUserID(ctx), models.FilterAll)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetStatsResponse{Stats: toAPIStats(calculator.Stats(projects))}), nil
}
