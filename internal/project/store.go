// Package project implements the user-scoped project store.
//
// Every operation takes the caller's user id explicitly and only ever sees
// projects whose UserID matches it: a project owned by someone else is
// indistinguishable from one that does not exist.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/storage"
)

// Store owns the "costs_projects" collection.
type Store struct {
	projects *storage.Collection[models.Project]
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a project store backed by kv.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		projects: storage.NewCollection[models.Project](kv, storage.KeyProjects),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's projects in storage order.
func (s *Store) List(ctx context.Context, userID string) ([]models.Project, error) {
	return s.ListFiltered(ctx, userID, models.FilterAll)
}

// ListFiltered returns the user's projects that pass filter, in storage order.
func (s *Store) ListFiltered(ctx context.Context, userID string, filter models.StatusFilter) ([]models.Project, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}

	owned := []models.Project{}
	for _, p := range s.projects.Load(ctx) {
		if p.UserID == userID && filter.Matches(&p) {
			owned = append(owned, normalize(p))
		}
	}
	return owned, nil
}

// Get returns the user's project with the given id.
func (s *Store) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}

	projects := s.projects.Load(ctx)
	i := indexOwned(projects, userID, id)
	if i < 0 {
		return nil, models.ErrProjectNotFound
	}
	p := normalize(projects[i])
	return &p, nil
}

// Create stores a new project owned by userID and confirms it reads back.
func (s *Store) Create(ctx context.Context, userID string, in models.ProjectInput) (*models.Project, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := models.Project{
		ID:          models.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Budget:      in.Budget,
		Category:    in.Category,
		Services:    []models.Service{},
		Completed:   false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.projects.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		return append(projects, p), nil
	})
	if err != nil {
		s.logger.Error("CreateProject failed", "user_id", userID, "error", err)
		return nil, err
	}

	saved, err := s.Get(ctx, userID, p.ID)
	if err != nil {
		s.logger.Error("Project missing after save", "project_id", p.ID, "error", err)
		return nil, fmt.Errorf("%w: project %s not found after save", models.ErrPersistence, p.ID)
	}

	s.logger.Info("Project created", "project_id", saved.ID, "user_id", userID)
	return saved, nil
}

// Update applies patch to the user's project. Ownership is re-asserted and
// UpdatedAt bumped.
func (s *Store) Update(ctx context.Context, userID, id string, patch models.ProjectPatch) (*models.Project, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated models.Project
	err := s.projects.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		i := indexOwned(projects, userID, id)
		if i < 0 {
			return nil, models.ErrProjectNotFound
		}
		p := &projects[i]
		if patch.Budget != nil {
			p.Budget = *patch.Budget
		}
		if patch.Completed != nil {
			p.Completed = *patch.Completed
		}
		p.UserID = userID
		p.UpdatedAt = s.now().UTC()
		updated = normalize(*p)
		return projects, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", "project_id", id, "user_id", userID)
	return &updated, nil
}

// Remove deletes the user's project along with its services.
func (s *Store) Remove(ctx context.Context, userID, id string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}

	err := s.projects.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		i := indexOwned(projects, userID, id)
		if i < 0 {
			return nil, models.ErrProjectNotFound
		}
		return append(projects[:i], projects[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Project removed", "project_id", id, "user_id", userID)
	return nil
}

// AddService appends a service to the user's project.
func (s *Store) AddService(ctx context.Context, userID, projectID string, in models.ServiceInput) (*models.Service, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var svc models.Service
	err := s.projects.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		i := indexOwned(projects, userID, projectID)
		if i < 0 {
			return nil, models.ErrProjectNotFound
		}
		now := s.now().UTC()
		svc = models.Service{
			ID:          models.NewID(),
			Name:        in.Name,
			Cost:        in.Cost,
			Description: in.Description,
			ProjectID:   projectID,
			CreatedAt:   now,
		}
		p := &projects[i]
		p.Services = append(p.Services, svc)
		p.UserID = userID
		p.UpdatedAt = now
		return projects, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Service added", "service_id", svc.ID, "project_id", projectID, "cost", svc.Cost)
	return &svc, nil
}

// RemoveService deletes a service from whichever of the user's projects holds
// it. Service ids are globally unique, so at most one project matches.
func (s *Store) RemoveService(ctx context.Context, userID, serviceID string) error {
	if userID == "" {
		return models.ErrNotAuthenticated
	}

	var projectID string
	err := s.projects.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		for i := range projects {
			p := &projects[i]
			if p.UserID != userID {
				continue
			}
			for j := range p.Services {
				if p.Services[j].ID == serviceID {
					p.Services = append(p.Services[:j], p.Services[j+1:]...)
					p.UpdatedAt = s.now().UTC()
					projectID = p.ID
					return projects, nil
				}
			}
		}
		return nil, models.ErrServiceNotFound
	})
	if err != nil {
		return err
	}

	s.logger.Info("Service removed", "service_id", serviceID, "project_id", projectID)
	return nil
}

func indexOwned(projects []models.Project, userID, id string) int {
	for i := range projects {
		if projects[i].ID == id && projects[i].UserID == userID {
			return i
		}
	}
	return -1
}

// normalize fills in fields that records written by older clients may omit.
func normalize(p models.Project) models.Project {
	if p.Services == nil {
		p.Services = []models.Service{}
	}
	return p
}
