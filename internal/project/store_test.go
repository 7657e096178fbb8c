package project

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/costs/internal/calculator"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/storage"
	"github.com/mmynk/costs/internal/storage/sqlite"
)

const (
	ana = "user-ana"
	bea = "user-bea"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *sqlite.SQLiteStore) {
	t.Helper()
	kv, err := sqlite.New(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv, opts...), kv
}

func site() models.ProjectInput {
	return models.ProjectInput{
		Name:        "Site",
		Description: "Company landing page",
		Category:    "design",
	}
}

func logo() models.ServiceInput {
	return models.ServiceInput{Name: "Logo", Cost: 500, Description: "Brand mark"}
}

func TestCreate_Defaults(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, ana, p.UserID)
	assert.Equal(t, 0.0, p.Budget)
	assert.False(t, p.Completed)
	assert.NotNil(t, p.Services)
	assert.Empty(t, p.Services)
	assert.Equal(t, fixed, p.CreatedAt)
	assert.Equal(t, fixed, p.UpdatedAt)
}

func TestCreate_Validation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.ProjectInput
	}{
		{"short name", models.ProjectInput{Name: "S", Description: "Company landing page", Category: "design"}},
		{"short description", models.ProjectInput{Name: "Site", Description: "short", Category: "design"}},
		{"unknown category", models.ProjectInput{Name: "Site", Description: "Company landing page", Category: "space"}},
		{"negative budget", models.ProjectInput{Name: "Site", Description: "Company landing page", Category: "design", Budget: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, ana, tt.input)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	list, err := store.List(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOperations_RequireUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.List(ctx, "")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
	_, err = store.Get(ctx, "", "x")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
	_, err = store.Create(ctx, "", site())
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
	_, err = store.Update(ctx, "", "x", models.ProjectPatch{})
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
	assert.ErrorIs(t, store.Remove(ctx, "", "x"), models.ErrNotAuthenticated)
	_, err = store.AddService(ctx, "", "x", logo())
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
	assert.ErrorIs(t, store.RemoveService(ctx, "", "x"), models.ErrNotAuthenticated)
}

func TestList_ScopedToUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	other := site()
	other.Name = "Shop"
	_, err = store.Create(ctx, bea, other)
	require.NoError(t, err)

	list, err := store.List(ctx, ana)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = store.Get(ctx, bea, a.ID)
	assert.ErrorIs(t, err, models.ErrProjectNotFound)

	_, err = store.Update(ctx, bea, a.ID, models.ProjectPatch{Completed: ptr(true)})
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
	assert.ErrorIs(t, store.Remove(ctx, bea, a.ID), models.ErrProjectNotFound)
	_, err = store.AddService(ctx, bea, a.ID, logo())
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestListFiltered(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	open, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	second := site()
	second.Name = "Shop"
	done, err := store.Create(ctx, ana, second)
	require.NoError(t, err)
	_, err = store.Update(ctx, ana, done.ID, models.ProjectPatch{Completed: ptr(true)})
	require.NoError(t, err)

	tests := []struct {
		filter models.StatusFilter
		want   []string
	}{
		{models.FilterAll, []string{open.ID, done.ID}},
		{models.FilterInProgress, []string{open.ID}},
		{models.FilterCompleted, []string{done.ID}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			list, err := store.ListFiltered(ctx, ana, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, p := range list {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGet_Missing(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), ana, "nope")
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestUpdate_BudgetAndCompleted(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	updated, err := store.Update(ctx, ana, p.ID, models.ProjectPatch{Budget: ptr(1000.0)})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.Budget)
	assert.False(t, updated.Completed)
	assert.Equal(t, clock, updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	updated, err = store.Update(ctx, ana, p.ID, models.ProjectPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.Budget)
	assert.True(t, updated.Completed)

	got, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestUpdate_RejectsNegativeBudget(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	_, err = store.Update(ctx, ana, p.ID, models.ProjectPatch{Budget: ptr(-5.0)})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, ana, p.ID))

	_, err = store.Get(ctx, ana, p.ID)
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
	assert.ErrorIs(t, store.Remove(ctx, ana, p.ID), models.ErrProjectNotFound)
}

func TestAddService_WithoutBudget(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	svc, err := store.AddService(ctx, ana, p.ID, logo())
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, p.ID, svc.ProjectID)
	assert.False(t, svc.CreatedAt.IsZero())

	got, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.Equal(t, *svc, got.Services[0])

	spent := calculator.TotalSpent(got.Services)
	assert.Equal(t, 500.0, spent)
	assert.Equal(t, 0.0, calculator.BudgetUsedPercent(got.Budget, spent))
}

func TestAddService_OverBudget(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := site()
	in.Budget = 1000
	p, err := store.Create(ctx, ana, in)
	require.NoError(t, err)
	_, err = store.AddService(ctx, ana, p.ID, models.ServiceInput{Name: "Build", Cost: 1200, Description: "Full build"})
	require.NoError(t, err)

	got, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	spent := calculator.TotalSpent(got.Services)
	assert.Equal(t, -200.0, calculator.RemainingBudget(got.Budget, spent))
	assert.InDelta(t, 120.0, calculator.BudgetUsedPercent(got.Budget, spent), 1e-9)
}

func TestAddService_Validation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	for _, cost := range []float64{0, math.NaN(), math.Inf(1)} {
		_, err = store.AddService(ctx, ana, p.ID, models.ServiceInput{Name: "Logo", Cost: cost, Description: "Brand mark"})
		assert.ErrorIs(t, err, models.ErrInvalidInput, "cost %v", cost)
		assert.NotErrorIs(t, err, models.ErrPersistence, "cost %v", cost)
	}

	got, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
}

func TestNonFiniteBudgetRejected(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := site()
	in.Budget = math.Inf(1)
	_, err := store.Create(ctx, ana, in)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	nan := math.NaN()
	_, err = store.Update(ctx, ana, p.ID, models.ProjectPatch{Budget: &nan})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	list, err := store.List(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoveService(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	svc, err := store.AddService(ctx, ana, p.ID, logo())
	require.NoError(t, err)

	assert.ErrorIs(t, store.RemoveService(ctx, bea, svc.ID), models.ErrServiceNotFound)
	require.NoError(t, store.RemoveService(ctx, ana, svc.ID))

	got, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
	assert.ErrorIs(t, store.RemoveService(ctx, ana, svc.ID), models.ErrServiceNotFound)
}

func TestRemoveService_RestoresExistingServices(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, ana, site())
	require.NoError(t, err)
	for _, in := range []models.ServiceInput{
		logo(),
		{Name: "Hosting", Cost: 120, Description: "Yearly plan"},
		{Name: "Copywriting", Cost: 300, Description: "Landing copy"},
	} {
		_, err := store.AddService(ctx, ana, p.ID, in)
		require.NoError(t, err)
	}

	before, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	require.Len(t, before.Services, 3)

	extra, err := store.AddService(ctx, ana, p.ID, models.ServiceInput{Name: "Photos", Cost: 80, Description: "Stock images"})
	require.NoError(t, err)
	require.NoError(t, store.RemoveService(ctx, ana, extra.ID))

	after, err := store.Get(ctx, ana, p.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Services, after.Services)
	assert.Equal(t, calculator.TotalSpent(before.Services), calculator.TotalSpent(after.Services))
}

func TestLegacyRecordWithoutServices(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	legacy := []map[string]any{{
		"id":          "p1",
		"name":        "Old",
		"description": "Imported record",
		"budget":      300,
		"category":    "outros",
		"completed":   false,
		"userId":      ana,
		"createdAt":   "2023-01-01T00:00:00Z",
		"updatedAt":   "2023-01-01T00:00:00Z",
	}}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, storage.KeyProjects, data))

	got, err := store.Get(ctx, ana, "p1")
	require.NoError(t, err)
	assert.NotNil(t, got.Services)
	assert.Equal(t, 0.0, calculator.TotalSpent(got.Services))
}

func ptr[T any](v T) *T { return &v }
