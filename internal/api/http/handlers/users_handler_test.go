package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/repository"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, recentSince time.Time) (repository.RoleCounts, error) {
	return repository.RoleCounts{Total: int64(len(r.users))}, nil
}

func authTestApp(t *testing.T) (*fiber.App, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	authService := service.NewAuthService(config.Config{
		Auth: config.AuthConfig{JWTSecret: "handler-test-secret", SessionTokenTTLHrs: 1, BcryptCost: 4},
	}, repo)
	gate := auth.NewGate(authService.TokenManager(), repo)
	handler := NewUsersHandler(authService)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
	group := app.Group("/api/auth")
	group.Post("/register", handler.Register)
	group.Post("/login", handler.Login)
	group.Get("/me", gate.RequireAuthenticated(), handler.Me)
	group.Patch("/me", gate.RequireAuthenticated(), handler.UpdateMe)
	return app, repo
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _ := authTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "flow@example.com",
		"password": "password123",
		"fullName": "Flow Tester",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		User  struct{ ID, Email string }
		Token string
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "flow@example.com", registered.User.Email)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "flow@example.com",
		"password": "password123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var logged struct{ Token string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logged))
	require.NotEmpty(t, logged.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+logged.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct{ Email, FullName string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "flow@example.com", me.Email)
	assert.Equal(t, "Flow Tester", me.FullName)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := authTestApp(t)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing email", fiber.Map{"password": "password123", "fullName": "X"}},
		{"bad email", fiber.Map{"email": "nope", "password": "password123", "fullName": "X"}},
		{"short password", fiber.Map{"email": "x@example.com", "password": "short", "fullName": "X"}},
		{"missing name", fiber.Map{"email": "x@example.com", "password": "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", tt.payload))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := authTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateMe(t *testing.T) {
	app, repo := authTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "patch@example.com",
		"password": "password123",
		"fullName": "Before",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct{ Token string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))

	req := jsonRequest(http.MethodPatch, "/api/auth/me", fiber.Map{"fullName": "After"})
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user, err := repo.GetByEmail(context.Background(), "patch@example.com")
	require.NoError(t, err)
	assert.Equal(t, "After", user.FullName)
}
