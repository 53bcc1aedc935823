package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notodo/internal/config"
	"notodo/internal/query"
	"notodo/internal/service"
	"notodo/internal/store/sqlstore"
)

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "notodo dev\n", out.String())
}

func TestSeed(t *testing.T) {
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	defer s.Close()
	svc := service.New(s, service.Options{HashCost: bcrypt.MinCost})
	ctx := context.Background()

	opts := seedOptions{name: "Demo", email: "demo@notodo.com", password: "demo1234", seed: 42}
	sum, err := seed(ctx, svc, opts)
	require.NoError(t, err)
	assert.Equal(t, "demo@notodo.com", sum.User.Email)
	assert.Equal(t, len(sampleCategories), sum.Categories)
	assert.Equal(t, len(sampleTasks), sum.Tasks)
	assert.Equal(t, 6, sum.Notes)

	tasks, err := svc.Tasks.List(ctx, sum.User.ID, query.TaskQuery{})
	require.NoError(t, err)
	assert.Len(t, tasks, len(sampleTasks))

	notes, err := svc.Notes.List(ctx, sum.User.ID, query.NoteQuery{})
	require.NoError(t, err)
	require.Len(t, notes, 6)
	assert.True(t, notes[0].IsPinned)

	// Seeding again reuses the account.
	again, err := seed(ctx, svc, opts)
	require.NoError(t, err)
	assert.Equal(t, sum.User.ID, again.User.ID)

	_, err = seed(ctx, svc, seedOptions{name: "Demo", email: "demo@notodo.com", password: "other", seed: 1})
	assert.ErrorIs(t, err, service.ErrAuth)
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOTODO_DATABASE_DSN", filepath.Join(dir, "seed.db"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"seed", "--email", "cli@notodo.com", "--seed", "7"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "Seeded Demo User (cli@notodo.com)"), out.String())
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 5000, BasePath: "/api", Debug: true},
		Database: config.DatabaseConfig{Driver: "sqlite3", DSN: ":memory:"},
		Auth:     config.AuthConfig{TokenTTL: time.Hour},
		Log:      config.LogConfig{Level: "info", Format: "text"},
	}
	handler, cleanup, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
