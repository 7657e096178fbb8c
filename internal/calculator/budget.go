// Package calculator derives budget figures from projects and their services.
// Nothing here is stored; every figure is recomputed on demand.
package calculator

import "github.com/mmynk/costs/internal/models"

// TotalSpent sums the cost of all services.
func TotalSpent(services []models.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Cost
	}
	return total
}

// BudgetUsedPercent returns spent as a percentage of budget.
// An unset budget (zero or less) reports 0%.
func BudgetUsedPercent(budget, spent float64) float64 {
	if budget <= 0 {
		return 0
	}
	return (spent / budget) * 100
}

// RemainingBudget returns budget minus spent. A negative result means the
// project is over budget.
func RemainingBudget(budget, spent float64) float64 {
	return budget - spent
}

// ProjectSummary holds the derived figures for one project.
type ProjectSummary struct {
	Budget       float64
	Spent        float64
	Remaining    float64
	UsedPercent  float64
	ServiceCount int
	OverBudget   bool
}

// Summarize computes the derived figures for p.
func Summarize(p *models.Project) ProjectSummary {
	spent := TotalSpent(p.Services)
	remaining := RemainingBudget(p.Budget, spent)
	return ProjectSummary{
		Budget:       p.Budget,
		Spent:        spent,
		Remaining:    remaining,
		UsedPercent:  BudgetUsedPercent(p.Budget, spent),
		ServiceCount: len(p.Services),
		OverBudget:   p.Budget > 0 && remaining < 0,
	}
}
