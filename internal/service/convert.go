package service

import (
	"github.com/mmynk/costs/internal/calculator"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/pkg/api"
)

func toAPIUser(u *models.AuthUser) *api.User {
	return &api.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toAPIService(s *models.Service) *api.Service {
	return &api.Service{
		ID:          s.ID,
		Name:        s.Name,
		Cost:        s.Cost,
		Description: s.Description,
		ProjectID:   s.ProjectID,
		CreatedAt:   s.CreatedAt,
	}
}

func toAPIProject(p *models.Project) *api.Project {
	services := make([]api.Service, len(p.Services))
	for i := range p.Services {
		services[i] = *toAPIService(&p.Services[i])
	}
	return &api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Budget:      p.Budget,
		Category:    p.Category,
		Services:    services,
		Completed:   p.Completed,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAPISummary(s calculator.ProjectSummary) *api.ProjectSummary {
	return &api.ProjectSummary{
		Budget:       s.Budget,
		Spent:        s.Spent,
		Remaining:    s.Remaining,
		UsedPercent:  s.UsedPercent,
		ServiceCount: s.ServiceCount,
		OverBudget:   s.OverBudget,
	}
}

func toAPIStats(s calculator.DashboardStats) *api.Stats {
	return &api.Stats{
		Total:      s.Total,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Budget:     s.Budget,
		Spent:      s.Spent,
	}
}
