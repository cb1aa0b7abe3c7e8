package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/live-commerce/internal/api/http/handlers"
	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/events"
	"github.com/spec-kit/live-commerce/internal/media"
	"github.com/spec-kit/live-commerce/internal/repository"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

type routerUserRepo struct {
	users map[string]*domain.User
}

func newRouterUserRepo(users ...*domain.User) *routerUserRepo {
	repo := &routerUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *routerUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *routerUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *routerUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *routerUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *routerUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *routerUserRepo) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *routerUserRepo) CountByRole(ctx context.Context, recentSince time.Time) (repository.RoleCounts, error) {
	return repository.RoleCounts{Total: int64(len(r.users))}, nil
}

// routerStreamRepo backs stream routes with the memory store and records the
// host filter passed to recorded listings.
type routerStreamRepo struct {
	repository.StreamRepository
	mem       *repository.MemoryStreamStore
	gotHostID string
}

func (r *routerStreamRepo) Create(ctx context.Context, stream *domain.Stream) error {
	return r.mem.Create(ctx, stream)
}

func (r *routerStreamRepo) GetByCallID(ctx context.Context, callID string) (*domain.Stream, error) {
	return r.mem.GetByCallID(ctx, callID)
}

func (r *routerStreamRepo) ListActive(ctx context.Context) ([]domain.Stream, error) {
	return r.mem.ListActive(ctx)
}

func (r *routerStreamRepo) End(ctx context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error) {
	return r.mem.End(ctx, callID, hostID, endedAt)
}

func (r *routerStreamRepo) ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error) {
	r.gotHostID = hostID
	return nil, nil
}

type routerFixture struct {
	app     *fiber.App
	users   *routerUserRepo
	streams *routerStreamRepo
	tokens  *auth.TokenManager
}

func newRouterFixture(t *testing.T, users ...*domain.User) *routerFixture {
	t.Helper()

	userRepo := newRouterUserRepo(users...)
	var cfg config.Config
	cfg.Auth.JWTSecret = "router-secret"
	cfg.Auth.SessionTokenTTLHrs = 1
	cfg.Auth.BcryptCost = 4
	authService := service.NewAuthService(cfg, userRepo)

	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}
	dispatcher := events.NewInMemoryDispatcher()
	streamRepo := &routerStreamRepo{mem: repository.NewMemoryStreamStore()}
	productRepo := repository.NewProductFailover(nil, repository.NewMemoryProductStore(), zap.NewNop())

	videoToken := auth.NewVideoTokenProvider("api-key", "api-secret", time.Minute)
	streamService := service.NewStreamService(streamRepo, store, videoToken, nil, dispatcher, zap.NewNop())
	catalogService := service.NewCatalogService(productRepo, repository.NewUnavailableCategoryStore(), dispatcher)
	adminService := service.NewAdminService(userRepo, dispatcher)
	sellerService := service.NewSellerService(streamRepo, productRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("live-commerce", "test", nil, nil),
		Users:      handlers.NewUsersHandler(authService),
		Admin:      handlers.NewAdminHandler(authService, adminService),
		Seller:     handlers.NewSellerHandler(sellerService, authService),
		Products:   handlers.NewProductsHandler(catalogService),
		Categories: handlers.NewCategoriesHandler(catalogService),
		Streams:    handlers.NewStreamsHandler(streamService, config.MediaConfig{}),
		Recordings: handlers.NewRecordingsHandler(streamService, config.MediaConfig{}),
		Gate:       auth.NewGate(authService.TokenManager(), userRepo),
	})
	return &routerFixture{app: app, users: userRepo, streams: streamRepo, tokens: authService.TokenManager()}
}

func (f *routerFixture) request(t *testing.T, method, target, body string, user *domain.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		token, _, err := f.tokens.GenerateToken(user)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestStreamRoutesAdmitAnyAuthenticatedUser(t *testing.T) {
	viewer := &domain.User{ID: "user_1", Email: "viewer@example.com", Role: domain.RoleUser}
	f := newRouterFixture(t, viewer)

	resp := f.request(t, http.MethodPost, "/api/stream",
		`{"callId":"call-1","title":"First live"}`, viewer)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create stream as user: expected 201, got %d", resp.StatusCode)
	}

	resp = f.request(t, http.MethodGet, "/api/stream/recorded", "", viewer)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("list recorded as user: expected 200, got %d", resp.StatusCode)
	}

	resp = f.request(t, http.MethodPost, "/api/stream/call-1/end", "", viewer)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("end own stream as user: expected 200, got %d", resp.StatusCode)
	}
}

func TestProductCreateAdmitsAnyAuthenticatedUser(t *testing.T) {
	viewer := &domain.User{ID: "user_1", Email: "viewer@example.com", Role: domain.RoleUser}
	f := newRouterFixture(t, viewer)

	resp := f.request(t, http.MethodPost, "/api/products",
		`{"name":"Mug","price":9.5,"stock":3}`, viewer)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("create product as user: expected 201, got %d", resp.StatusCode)
	}

	resp = f.request(t, http.MethodPost, "/api/products", `{"name":"Mug","price":9.5}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("create product anonymously: expected 401, got %d", resp.StatusCode)
	}
}

func TestSellerModuleStaysRoleGated(t *testing.T) {
	viewer := &domain.User{ID: "user_1", Email: "viewer@example.com", Role: domain.RoleUser}
	f := newRouterFixture(t, viewer)

	resp := f.request(t, http.MethodGet, "/api/seller/stats", "", viewer)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("seller stats as user: expected 403, got %d", resp.StatusCode)
	}
}

func TestRecordedListingHonorsHostFilter(t *testing.T) {
	viewer := &domain.User{ID: "user_1", Email: "viewer@example.com", Role: domain.RoleUser}
	f := newRouterFixture(t, viewer)

	resp := f.request(t, http.MethodGet, "/api/stream/recorded?hostId=host-9", "", viewer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if f.streams.gotHostID != "host-9" {
		t.Errorf("host filter = %q, want %q", f.streams.gotHostID, "host-9")
	}

	resp = f.request(t, http.MethodGet, "/api/stream/recorded", "", viewer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if f.streams.gotHostID != "" {
		t.Errorf("unfiltered listing passed host %q, want empty", f.streams.gotHostID)
	}
}

func TestAssignRoleRoute(t *testing.T) {
	root := &domain.User{ID: "user_root", Email: "root@example.com", Role: domain.RoleSuperAdmin}
	target := &domain.User{ID: "user_2", Email: "target@example.com", Role: domain.RoleUser}
	f := newRouterFixture(t, root, target)

	resp := f.request(t, http.MethodPut, "/api/admin/assign-role/user_2", `{"role":"seller"}`, root)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("assign role: expected 200, got %d", resp.StatusCode)
	}
	if got := f.users.users["user_2"].Role; got != domain.RoleSeller {
		t.Errorf("role = %q, want %q", got, domain.RoleSeller)
	}

	resp = f.request(t, http.MethodPut, "/api/admin/assign-role/user_2", `{"role":"admin"}`, target)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("assign role as non-superadmin: expected 403, got %d", resp.StatusCode)
	}
}
