package adminclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/portfoliotest"
	"github.com/ovaphlow/pitchfork/service-portfolio/pkg/adminclient"
)

func setup(t *testing.T) (*portfoliotest.Env, *adminclient.Client) {
	t.Helper()
	env := portfoliotest.New(t, portfoliotest.Options{})
	srv := httptest.NewServer(env.Handler)
	t.Cleanup(srv.Close)
	return env, adminclient.New(srv.URL, adminclient.WithHTTPClient(srv.Client()))
}

func login(t *testing.T, c *adminclient.Client) {
	t.Helper()
	_, err := c.Login(context.Background(), portfoliotest.AdminEmail, portfoliotest.AdminPassword)
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	_, err := c.Login(ctx, portfoliotest.AdminEmail, "wrong")
	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, c.LoggedIn())

	s, err := c.Login(ctx, portfoliotest.AdminEmail, portfoliotest.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, portfoliotest.AdminName, s.FullName)
	assert.Equal(t, "admin", s.Role)
	assert.NotEmpty(t, s.Token)
	assert.True(t, c.LoggedIn())

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestMutationsRequireLogin(t *testing.T) {
	env, c := setup(t)
	_, err := c.Projects.Create(context.Background(), adminclient.Project{Title: "X"})
	assert.ErrorIs(t, err, adminclient.ErrNotLoggedIn)
	assert.Equal(t, 0, env.Projects.Len())
}

func TestOptimisticListPatching(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	login(t, c)
	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.Projects.Items())

	first, err := c.Projects.Create(ctx, adminclient.Project{Title: "X", Category: "Web", Features: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, []string{"a", "b"}, first.Features)
	assert.Empty(t, first.Tech)
	assert.False(t, first.DateAdded.IsZero())

	second, err := c.Projects.Create(ctx, adminclient.Project{Title: "Y"})
	require.NoError(t, err)

	items := c.Projects.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "create prepends")

	require.NoError(t, c.Projects.Update(ctx, first.ID, adminclient.Project{Title: "X2"}))
	items = c.Projects.Items()
	assert.Equal(t, "X2", items[1].Title)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, first.DateAdded, items[1].DateAdded)

	require.NoError(t, c.Projects.Delete(ctx, second.ID))
	items = c.Projects.Items()
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	// the local list agrees with the server
	fresh, err := c.Projects.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "X2", fresh[0].Title)
	assert.Empty(t, fresh[0].Features, "update replaces, omitted lists become empty")
}

func TestAboutAndServices(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	login(t, c)

	a, err := c.About.Create(ctx, adminclient.AboutItem{Title: "Intro", OrderIndex: 2})
	require.NoError(t, err)
	_, err = c.About.Create(ctx, adminclient.AboutItem{Title: "Before", OrderIndex: 1})
	require.NoError(t, err)

	rows, err := c.About.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Before", rows[0].Title)

	got, err := c.About.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro", got.Title)

	svc, err := c.Services.Create(ctx, adminclient.Service{Name: "Audit", Points: []string{"fast"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"fast"}, svc.Points)

	err = c.Services.Delete(ctx, 999)
	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.True(t, c.LoggedIn(), "a 404 does not end the session")
}

func TestExpiredSessionForcesLogout(t *testing.T) {
	env, c := setup(t)
	ctx := context.Background()
	login(t, c)

	env.Advance(8*time.Hour + time.Second)
	_, err := c.Services.Create(ctx, adminclient.Service{Name: "late"})
	assert.True(t, errors.Is(err, adminclient.ErrSessionExpired))
	assert.False(t, c.LoggedIn())
	assert.Equal(t, 0, env.Services.Len())

	// public reads keep working without a session
	_, err = c.Services.Fetch(ctx)
	assert.NoError(t, err)
}

func TestForbiddenMutationForcesLogout(t *testing.T) {
	env := portfoliotest.New(t, portfoliotest.Options{})
	editor, _, err := env.Tokens.Issue(2, "editor@example.com", authentity.Role("editor"))
	require.NoError(t, err)

	// the session is a real admin login, but writes reach the API carrying a
	// token whose role is not admin
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.URL.Path != "/api/auth/login" {
			r.Header.Set("Authorization", "Bearer "+editor)
		}
		env.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	c := adminclient.New(srv.URL, adminclient.WithHTTPClient(srv.Client()))
	ctx := context.Background()
	login(t, c)

	_, err = c.Services.Create(ctx, adminclient.Service{Name: "blocked"})
	assert.ErrorIs(t, err, adminclient.ErrSessionExpired)
	assert.False(t, c.LoggedIn())
	assert.Equal(t, 0, env.Services.Len())
	assert.Empty(t, c.Services.Items())

	_, err = c.Services.Create(ctx, adminclient.Service{Name: "again"})
	assert.ErrorIs(t, err, adminclient.ErrNotLoggedIn)
}

func TestUpdateNormalisesLocalLists(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	login(t, c)

	p, err := c.Projects.Create(ctx, adminclient.Project{Title: "X", Tech: []string{"go"}})
	require.NoError(t, err)
	s, err := c.Services.Create(ctx, adminclient.Service{Name: "S"})
	require.NoError(t, err)

	require.NoError(t, c.Projects.Update(ctx, p.ID, adminclient.Project{Title: "X", Features: []string{" a ", "", "b"}}))
	require.NoError(t, c.Services.Update(ctx, s.ID, adminclient.Service{Name: "S", Points: []string{"  "}}))

	localProjects, localServices := c.Projects.Items(), c.Services.Items()
	fresh, err := c.Projects.Fetch(ctx)
	require.NoError(t, err)
	freshServices, err := c.Services.Fetch(ctx)
	require.NoError(t, err)

	require.Len(t, localProjects, 1)
	require.Len(t, fresh, 1)
	assert.Equal(t, fresh[0].Features, localProjects[0].Features)
	assert.Equal(t, []string{"a", "b"}, localProjects[0].Features)
	assert.Empty(t, fresh[0].Tech)
	assert.NotNil(t, localProjects[0].Tech)
	assert.Empty(t, localProjects[0].Tech)
	assert.True(t, fresh[0].DateAdded.Equal(localProjects[0].DateAdded))

	require.Len(t, localServices, 1)
	assert.Empty(t, freshServices[0].Points)
	assert.NotNil(t, localServices[0].Points)
	assert.Empty(t, localServices[0].Points)
}

func TestValidationErrorSurfaces(t *testing.T) {
	_, c := setup(t)
	login(t, c)
	_, err := c.About.Create(context.Background(), adminclient.AboutItem{Title: strings.Repeat("t", 256)})
	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.True(t, c.LoggedIn())
}
