package portfoliotest

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about"
	aboutentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/about/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth"
	authentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project"
	projectentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/project/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/router"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services"
	serviceentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

const (
	Secret        = "portfoliotest-secret-000"
	AdminEmail    = "admin@example.com"
	AdminPassword = "correct-horse-battery"
	AdminName     = "Ada Admin"
)

// Env is a router wired to in-memory stores with one seeded admin.
type Env struct {
	Handler  http.Handler
	Tokens   *auth.TokenIssuer
	Users    *Users
	About    *Table[aboutentity.About]
	Projects *Table[projectentity.Project]
	Services *Table[serviceentity.ServiceItem]
	DB       *Pinger
	Registry *prometheus.Registry

	mu  sync.Mutex
	now time.Time
}

// Options tweak the environment; the zero value is fine.
type Options struct {
	LoginRateLimit int
	AllowedOrigins []string
	TokenTTL       time.Duration
}

func New(t testing.TB, opts Options) *Env {
	t.Helper()
	e := &Env{
		Users:    &Users{},
		About:    NewAboutTable(),
		Projects: NewProjectTable(),
		Services: NewServiceTable(),
		DB:       &Pinger{},
		Registry: prometheus.NewRegistry(),
		now:      time.Now(),
	}
	logger := zap.NewNop().Sugar()
	e.Tokens = auth.NewTokenIssuer(Secret, opts.TokenTTL).WithClock(e.Now)

	authSvc := auth.NewAuthService(e.Users, auth.BcryptHasher{Cost: bcrypt.MinCost}, e.Tokens)
	_, _, err := authSvc.EnsureDefaultAdmin(context.Background(), auth.SeedAdmin{
		Email:    AdminEmail,
		FullName: AdminName,
		Password: AdminPassword,
	})
	require.NoError(t, err)

	e.Handler = router.RegisterRoutes(router.Deps{
		Logger:         logger,
		DB:             e.DB,
		Tokens:         e.Tokens,
		Auth:           auth.NewHandler(authSvc, logger),
		About:          about.NewHandler(about.NewService(e.About), logger),
		Projects:       project.NewHandler(project.NewService(e.Projects), logger),
		Services:       services.NewHandler(services.NewItemService(e.Services), logger),
		AllowedOrigins: opts.AllowedOrigins,
		LoginRateLimit: opts.LoginRateLimit,
		Registry:       e.Registry,
	})
	return e
}

// Now is the clock the token issuer reads.
func (e *Env) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Advance moves the token clock forward.
func (e *Env) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	e.mu.Unlock()
}

// AdminToken issues a valid admin token for the seeded account.
func (e *Env) AdminToken(t testing.TB) string {
	t.Helper()
	tok, _, err := e.Tokens.Issue(1, AdminEmail, authentity.RoleAdmin)
	require.NoError(t, err)
	return tok
}
