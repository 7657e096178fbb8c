package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/costs/internal/account"
	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/project"
	"github.com/mmynk/costs/internal/session"
	"github.com/mmynk/costs/internal/storage/sqlite"
)

type harness struct {
	accounts *account.Store
	projects *project.Store
	out      bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv, err := sqlite.New(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	return &harness{
		accounts: account.NewStore(kv, session.NewStore(kv), auth.NewBcryptHasher(bcrypt.MinCost)),
		projects: project.NewStore(kv),
	}
}

// run executes one command with the given stdin, like a separate invocation.
func (h *harness) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	h.out.Reset()
	return NewApp(h.accounts, h.projects, strings.NewReader(stdin), &h.out).Run(context.Background(), args)
}

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}
}

func (h *harness) registerAna(t *testing.T) {
	t.Helper()
	stubPasswords(t, "p1", "p1")
	require.NoError(t, h.run(t, "Ana\nana@x.com\n", "register"))
}

func (h *harness) onlyProject(t *testing.T) models.Project {
	t.Helper()
	user := h.accounts.CurrentUser(context.Background())
	require.NotNil(t, user)
	list, err := h.projects.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.run(t, ""), ErrUsage)
	assert.Contains(t, h.out.String(), "add-service")

	assert.ErrorIs(t, h.run(t, "", "frobnicate"), ErrUsage)
	assert.NoError(t, h.run(t, "", "help"))
}

func TestRegisterWhoamiLogout(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)
	assert.Contains(t, h.out.String(), "Welcome, Ana!")

	require.NoError(t, h.run(t, "", "whoami"))
	assert.Equal(t, "Ana <ana@x.com>\n", h.out.String())

	require.NoError(t, h.run(t, "", "logout"))
	assert.ErrorIs(t, h.run(t, "", "whoami"), models.ErrNotAuthenticated)
	assert.ErrorIs(t, h.run(t, "", "list"), models.ErrNotAuthenticated)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, "p1", "p2")
	assert.ErrorIs(t, h.run(t, "Ana\nana@x.com\n", "register"), models.ErrPasswordMismatch)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)
	require.NoError(t, h.run(t, "", "logout"))

	stubPasswords(t, "wrong")
	assert.ErrorIs(t, h.run(t, "ana@x.com\n", "login"), models.ErrInvalidCredentials)

	stubPasswords(t, "p1")
	require.NoError(t, h.run(t, "ana@x.com\n", "login"))
	assert.Contains(t, h.out.String(), "Logged in as Ana <ana@x.com>")
}

func TestProfile(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)

	assert.ErrorIs(t, h.run(t, "", "profile"), ErrUsage)

	require.NoError(t, h.run(t, "", "profile", "-name", "Ana Maria"))
	assert.Contains(t, h.out.String(), "Ana Maria <ana@x.com>")
}

func TestCreate_FromPrompts(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)

	require.NoError(t, h.run(t, "Site\nCompany landing page\ndesign\n", "create"))
	p := h.onlyProject(t)
	assert.Equal(t, "Site", p.Name)
	assert.Equal(t, "design", p.Category)
	assert.Equal(t, 0.0, p.Budget)
	assert.Contains(t, h.out.String(), p.ID)
}

func TestProjectLifecycle(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)

	require.NoError(t, h.run(t, "", "create", "-name", "Site", "-desc", "Company landing page", "-category", "design"))
	p := h.onlyProject(t)

	require.NoError(t, h.run(t, "", "add-service", p.ID, "-name", "Logo", "-cost", "500", "-desc", "Brand mark"))
	assert.Contains(t, h.out.String(), "R$ 500,00")

	require.NoError(t, h.run(t, "", "show", p.ID))
	out := h.out.String()
	assert.Contains(t, out, "Budget:    not set")
	assert.Contains(t, out, "Spent:     R$ 500,00")
	assert.Contains(t, out, "Used:      0,0%")
	assert.NotContains(t, out, "over budget")

	require.NoError(t, h.run(t, "", "budget", p.ID, "1000"))
	require.NoError(t, h.run(t, "", "add-service", p.ID, "-name", "Build", "-cost", "700", "-desc", "Full build"))
	require.NoError(t, h.run(t, "", "show", p.ID))
	assert.Contains(t, h.out.String(), "Remaining: -R$ 200,00")
	assert.Contains(t, h.out.String(), "Warning: project is over budget")

	require.NoError(t, h.run(t, "", "complete", p.ID))
	require.NoError(t, h.run(t, "", "list", "-filter", "in-progress"))
	assert.Equal(t, "No projects.\n", h.out.String())
	require.NoError(t, h.run(t, "", "list", "-filter", "completed"))
	assert.Contains(t, h.out.String(), p.ID)
	assert.ErrorIs(t, h.run(t, "", "list", "-filter", "archived"), ErrUsage)

	require.NoError(t, h.run(t, "", "stats"))
	assert.Contains(t, h.out.String(), "Projects:    1")
	assert.Contains(t, h.out.String(), "Completed:   1")
	assert.Contains(t, h.out.String(), "Spent:       R$ 1.200,00")

	svcID := h.onlyProject(t).Services[0].ID
	require.NoError(t, h.run(t, "", "rm-service", svcID))
	assert.ErrorIs(t, h.run(t, "", "rm-service", svcID), models.ErrServiceNotFound)
	assert.Len(t, h.onlyProject(t).Services, 1)

	require.NoError(t, h.run(t, "", "reopen", p.ID))
	assert.False(t, h.onlyProject(t).Completed)

	require.NoError(t, h.run(t, "", "delete", p.ID))
	assert.ErrorIs(t, h.run(t, "", "show", p.ID), models.ErrProjectNotFound)
}

func TestAddService_PromptsForMissingFields(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)
	require.NoError(t, h.run(t, "", "create", "-name", "Site", "-desc", "Company landing page", "-category", "design"))
	p := h.onlyProject(t)

	require.NoError(t, h.run(t, "Logo\n500\nBrand mark\n", "add-service", p.ID))
	services := h.onlyProject(t).Services
	require.Len(t, services, 1)
	assert.Equal(t, 500.0, services[0].Cost)

	assert.ErrorIs(t, h.run(t, "Logo\nlots\n", "add-service", p.ID), models.ErrInvalidInput)
	assert.ErrorIs(t, h.run(t, "", "add-service"), ErrUsage)
}

func TestBudget_InvalidAmount(t *testing.T) {
	h := newHarness(t)
	h.registerAna(t)
	assert.ErrorIs(t, h.run(t, "", "budget", "some-id", "lots"), ErrUsage)
	assert.ErrorIs(t, h.run(t, "", "budget", "some-id", "10"), models.ErrProjectNotFound)
}
