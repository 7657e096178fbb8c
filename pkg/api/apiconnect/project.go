package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/costs/pkg/api"
)

// ProjectServiceName is the fully-qualified name of the ProjectService.
const ProjectServiceName = "costs.v1.ProjectService"

const (
	ProjectServiceListProjectsProcedure  = "/costs.v1.ProjectService/ListProjects"
	ProjectServiceGetProjectProcedure    = "/costs.v1.ProjectService/GetProject"
	ProjectServiceCreateProjectProcedure = "/costs.v1.ProjectService/CreateProject"
	ProjectServiceUpdateProjectProcedure = "/costs.v1.ProjectService/UpdateProject"
	ProjectServiceDeleteProjectProcedure = "/costs.v1.ProjectService/DeleteProject"
	ProjectServiceAddServiceProcedure    = "/costs.v1.ProjectService/AddService"
	ProjectServiceRemoveServiceProcedure = "/costs.v1.ProjectService/RemoveService"
	ProjectServiceGetStatsProcedure      = "/costs.v1.ProjectService/GetStats"
)

// ProjectServiceHandler is implemented by the server side of the ProjectService.
type ProjectServiceHandler interface {
	ListProjects(context.Context, *connect.Request[api.ListProjectsRequest]) (*connect.Response[api.ListProjectsResponse], error)
	GetProject(context.Context, *connect.Request[api.GetProjectRequest]) (*connect.Response[api.GetProjectResponse], error)
	CreateProject(context.Context, *connect.Request[api.CreateProjectRequest]) (*connect.Response[api.CreateProjectResponse], error)
	UpdateProject(context.Context, *connect.Request[api.UpdateProjectRequest]) (*connect.Response[api.UpdateProjectResponse], error)
	DeleteProject(context.Context, *connect.Request[api.DeleteProjectRequest]) (*connect.Response[api.DeleteProjectResponse], error)
	AddService(context.Context, *connect.Request[api.AddServiceRequest]) (*connect.Response[api.AddServiceResponse], error)
	RemoveService(context.Context, *connect.Request[api.RemoveServiceRequest]) (*connect.Response[api.RemoveServiceResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
}

// NewProjectServiceHandler builds an HTTP handler for svc and returns the path
// prefix it should be mounted on.
func NewProjectServiceHandler(svc ProjectServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listProjects := connect.NewUnaryHandler(ProjectServiceListProjectsProcedure, svc.ListProjects, opts...)
	getProject := connect.NewUnaryHandler(ProjectServiceGetProjectProcedure, svc.GetProject, opts...)
	createProject := connect.NewUnaryHandler(ProjectServiceCreateProjectProcedure, svc.CreateProject, opts...)
	updateProject := connect.NewUnaryHandler(ProjectServiceUpdateProjectProcedure, svc.UpdateProject, opts...)
	deleteProject := connect.NewUnaryHandler(ProjectServiceDeleteProjectProcedure, svc.DeleteProject, opts...)
	addService := connect.NewUnaryHandler(ProjectServiceAddServiceProcedure, svc.AddService, opts...)
	removeService := connect.NewUnaryHandler(ProjectServiceRemoveServiceProcedure, svc.RemoveService, opts...)
	getStats := connect.NewUnaryHandler(ProjectServiceGetStatsProcedure, svc.GetStats, opts...)

	return "/" + ProjectServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ProjectServiceListProjectsProcedure:
			listProjects.ServeHTTP(w, r)
		case ProjectServiceGetProjectProcedure:
			getProject.ServeHTTP(w, r)
		case ProjectServiceCreateProjectProcedure:
			createProject.ServeHTTP(w, r)
		case ProjectServiceUpdateProjectProcedure:
			updateProject.ServeHTTP(w, r)
		case ProjectServiceDeleteProjectProcedure:
			deleteProject.ServeHTTP(w, r)
		case ProjectServiceAddServiceProcedure:
			addService.ServeHTTP(w, r)
		case ProjectServiceRemoveServiceProcedure:
			removeService.ServeHTTP(w, r)
		case ProjectServiceGetStatsProcedure:
			getStats.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ProjectServiceClient is a client for the ProjectService.
type ProjectServiceClient interface {
	ListProjects(context.Context, *connect.Request[api.ListProjectsRequest]) (*connect.Response[api.ListProjectsResponse], error)
	GetProject(context.Context, *connect.Request[api.GetProjectRequest]) (*connect.Response[api.GetProjectResponse], error)
	CreateProject(context.Context, *connect.Request[api.CreateProjectRequest]) (*connect.Response[api.CreateProjectResponse], error)
	UpdateProject(context.Context, *connect.Request[api.UpdateProjectRequest]) (*connect.Response[api.UpdateProjectResponse], error)
	DeleteProject(context.Context, *connect.Request[api.DeleteProjectRequest]) (*connect.Response[api.DeleteProjectResponse], error)
	AddService(context.Context, *connect.Request[api.AddServiceRequest]) (*connect.Response[api.AddServiceResponse], error)
	RemoveService(context.Context, *connect.Request[api.RemoveServiceRequest]) (*connect.Response[api.RemoveServiceResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
}

// NewProjectServiceClient returns a client for the ProjectService served at
// baseURL.
func NewProjectServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProjectServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &projectServiceClient{
		listProjects:  connect.NewClient[api.ListProjectsRequest, api.ListProjectsResponse](httpClient, baseURL+ProjectServiceListProjectsProcedure, opts...),
		getProject:    connect.NewClient[api.GetProjectRequest, api.GetProjectResponse](httpClient, baseURL+ProjectServiceGetProjectProcedure, opts...),
		createProject: connect.NewClient[api.CreateProjectRequest, api.CreateProjectResponse](httpClient, baseURL+ProjectServiceCreateProjectProcedure, opts...),
		updateProject: connect.NewClient[api.UpdateProjectRequest, api.UpdateProjectResponse](httpClient, baseURL+ProjectServiceUpdateProjectProcedure, opts...),
		deleteProject: connect.NewClient[api.DeleteProjectRequest, api.DeleteProjectResponse](httpClient, baseURL+ProjectServiceDeleteProjectProcedure, opts...),
		addService:    connect.NewClient[api.AddServiceRequest, api.AddServiceResponse](httpClient, baseURL+ProjectServiceAddServiceProcedure, opts...),
		removeService: connect.NewClient[api.RemoveServiceRequest, api.RemoveServiceResponse](httpClient, baseURL+ProjectServiceRemoveServiceProcedure, opts...),
		getStats:      connect.NewClient[api.GetStatsRequest, api.GetStatsResponse](httpClient, baseURL+ProjectServiceGetStatsProcedure, opts...),
	}
}

type projectServiceClient struct {
	listProjects  *connect.Client[api.ListProjectsRequest, api.ListProjectsResponse]
	getProject    *connect.Client[api.GetProjectRequest, api.GetProjectResponse]
	createProject *connect.Client[api.CreateProjectRequest, api.CreateProjectResponse]
	updateProject *connect.Client[api.UpdateProjectRequest, api.UpdateProjectResponse]
	deleteProject *connect.Client[api.DeleteProjectRequest, api.DeleteProjectResponse]
	addService    *connect.Client[api.AddServiceRequest, api.AddServiceResponse]
	removeService *connect.Client[api.RemoveServiceRequest, api.RemoveServiceResponse]
	getStats      *connect.Client[api.GetStatsRequest, api.GetStatsResponse]
}

func (c *projectServiceClient) ListProjects(ctx context.Context, req *connect.Request[api.ListProjectsRequest]) (*connect.Response[api.ListProjectsResponse], error) {
	return c.listProjects.CallUnary(ctx, req)
}

func (c *projectServiceClient) GetProject(ctx context.Context, req *connect.Request[api.GetProjectRequest]) (*connect.Response[api.GetProjectResponse], error) {
	return c.getProject.CallUnary(ctx, req)
}

func (c *projectServiceClient) CreateProject(ctx context.Context, req *connect.Request[api.CreateProjectRequest]) (*connect.Response[api.CreateProjectResponse], error) {
	return c.createProject.CallUnary(ctx, req)
}

func (c *projectServiceClient) UpdateProject(ctx context.Context, req *connect.Request[api.UpdateProjectRequest]) (*connect.Response[api.UpdateProjectResponse], error) {
	return c.updateProject.CallUnary(ctx, req)
}

func (c *projectServiceClient) DeleteProject(ctx context.Context, req *connect.Request[api.DeleteProjectRequest]) (*connect.Response[api.DeleteProjectResponse], error) {
	return c.deleteProject.CallUnary(ctx, req)
}

func (c *projectServiceClient) AddService(ctx context.Context, req *connect.Request[api.AddServiceRequest]) (*connect.Response[api.AddServiceResponse], error) {
	return c.addService.CallUnary(ctx, req)
}

func (c *projectServiceClient) RemoveService(ctx context.Context, req *connect.Request[api.RemoveServiceRequest]) (*connect.Response[api.RemoveServiceResponse], error) {
	return c.removeService.CallUnary(ctx, req)
}

func (c *projectServiceClient) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}
