package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mmynk/costs/internal/calculator"
	"github.com/mmynk/costs/internal/models"
)

func status(p *models.Project) string {
	if p.Completed {
		return "completed"
	}
	return "in progress"
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	filterArg := fs.String("filter", "all", "all, in-progress or completed")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	filter, ok := models.ParseStatusFilter(*filterArg)
	if !ok {
		return fmt.Errorf("%w: unknown filter %q", ErrUsage, *filterArg)
	}

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}
	projects, err := a.projects.ListFiltered(ctx, userID, filter)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tBUDGET\tSPENT\tSTATUS")
	for i := range projects {
		p := &projects[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category,
			formatCurrency(p.Budget), formatCurrency(calculator.TotalSpent(p.Services)), status(p))
	}
	return tw.Flush()
}

func (a *App) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <project-id>", ErrUsage)
	}
	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}
	p, err := a.projects.Get(ctx, userID, args[0])
	if err != nil {
		return err
	}

	sum := calculator.Summarize(p)
	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, status(p))
	fmt.Fprintf(a.out, "%s\n\n", p.Description)
	fmt.Fprintf(a.out, "Category:  %s\n", p.Category)
	fmt.Fprintf(a.out, "Created:   %s\n", formatDate(p.CreatedAt))
	if sum.Budget > 0 {
		fmt.Fprintf(a.out, "Budget:    %s\n", formatCurrency(sum.Budget))
	} else {
		fmt.Fprintln(a.out, "Budget:    not set")
	}
	fmt.Fprintf(a.out, "Spent:     %s\n", formatCurrency(sum.Spent))
	fmt.Fprintf(a.out, "Remaining: %s\n", formatCurrency(sum.Remaining))
	fmt.Fprintf(a.out, "Used:      %s\n", formatPercent(sum.UsedPercent))
	if sum.OverBudget {
		fmt.Fprintln(a.out, "Warning: project is over budget")
	}

	if len(p.Services) == 0 {
		fmt.Fprintln(a.out, "\nNo services.")
		return nil
	}
	fmt.Fprintln(a.out)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE ID\tNAME\tCOST\tDESCRIPTION\tADDED")
	for _, s := range p.Services {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, formatCurrency(s.Cost), s.Description, formatDate(s.CreatedAt))
	}
	return tw.Flush()
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := a.flagSet("create")
	name := fs.String("name", "", "project name")
	desc := fs.String("desc", "", "project description")
	category := fs.String("category", "", "one of: "+strings.Join(models.Categories, ", "))
	budget := fs.Float64("budget", 0, "planned budget")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	in := models.ProjectInput{Budget: *budget}
	if in.Name, err = a.prompt(*name, "Name"); err != nil {
		return err
	}
	if in.Description, err = a.prompt(*desc, "Description"); err != nil {
		return err
	}
	if in.Category, err = a.prompt(*category, "Category ("+strings.Join(models.Categories, ", ")+")"); err != nil {
		return err
	}

	p, err := a.projects.Create(ctx, userID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created project %s (%s)\n", p.Name, p.ID)
	return nil
}

func (a *App) budget(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: budget <project-id> <amount>", ErrUsage)
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid amount %q", ErrUsage, args[1])
	}
	p, err := a.update(ctx, args[0], models.ProjectPatch{Budget: &amount})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Budget of %s set to %s\n", p.Name, formatCurrency(p.Budget))
	return nil
}

func (a *App) complete(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, true)
}

func (a *App) reopen(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, false)
}

func (a *App) setCompleted(ctx context.Context, args []string, completed bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a project id", ErrUsage)
	}
	p, err := a.update(ctx, args[0], models.ProjectPatch{Completed: &completed})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project %s is %s\n", p.Name, status(p))
	return nil
}

func (a *App) update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	userID, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	return a.projects.Update(ctx, userID, id, patch)
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <project-id>", ErrUsage)
	}
	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}
	if err := a.projects.Remove(ctx, userID, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Project deleted.")
	return nil
}

func (a *App) addService(ctx context.Context, args []string) error {
	fs := a.flagSet("add-service")
	name := fs.String("name", "", "service name")
	cost := fs.Float64("cost", 0, "service cost")
	desc := fs.String("desc", "", "service description")
	projectID, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	in := models.ServiceInput{Cost: *cost}
	if in.Name, err = a.prompt(*name, "Name"); err != nil {
		return err
	}
	if in.Cost == 0 {
		raw, err := GetSimpleText(a.reader, "Cost", a.out)
		if err != nil {
			return err
		}
		if in.Cost, err = strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("%w: invalid cost %q", models.ErrInvalidInput, raw)
		}
	}
	if in.Description, err = a.prompt(*desc, "Description"); err != nil {
		return err
	}

	svc, err := a.projects.AddService(ctx, userID, projectID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s) for %s\n", svc.Name, svc.ID, formatCurrency(svc.Cost))
	return nil
}

func (a *App) removeService(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rm-service <service-id>", ErrUsage)
	}
	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}
	if err := a.projects.RemoveService(ctx, userID, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Service removed.")
	return nil
}

func (a *App) stats(ctx context.Context, _ []string) error {
	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}
	projects, err := a.projects.List(ctx, userID)
	if err != nil {
		return err
	}

	s := calculator.Stats(projects)
	fmt.Fprintf(a.out, "Projects:    %d\n", s.Total)
	fmt.Fprintf(a.out, "In progress: %d\n", s.InProgress)
	fmt.Fprintf(a.out, "Completed:   %d\n", s.Completed)
	fmt.Fprintf(a.out, "Budget:      %s\n", formatCurrency(s.Budget))
	fmt.Fprintf(a.out, "Spent:       %s\n", formatCurrency(s.Spent))
	return nil
}
