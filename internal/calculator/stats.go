package calculator

import "github.com/mmynk/costs/internal/models"

// DashboardStats aggregates a user's projects for the overview screen.
type DashboardStats struct {
	Total      int
	InProgress int
	Completed  int
	Budget     float64 // Sum of all project budgets
	Spent      float64 // Sum of all service costs
}

// Stats computes DashboardStats over projects.
func Stats(projects []models.Project) DashboardStats {
	var stats DashboardStats
	for i := range projects {
		p := &projects[i]
		stats.Total++
		if p.Completed {
			stats.Completed++
		} else {
			stats.InProgress++
		}
		stats.Budget += p.Budget
		stats.Spent += TotalSpent(p.Services)
	}
	return stats
}
