package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/internal/service/auth"
	pkgauth "github.com/medbook/booking-api/pkg/auth"
	"github.com/medbook/booking-api/pkg/security"
)

type memUserRepo struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.New()
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type memTokenRepo struct {
	revoked map[string]bool
}

func (m *memTokenRepo) Revoke(_ context.Context, token string, _ time.Time) error {
	m.revoked[token] = true
	return nil
}

func (m *memTokenRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	return m.revoked[token], nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := auth.NewService(
		newMemUserRepo(),
		&memTokenRepo{revoked: make(map[string]bool)},
		pkgauth.NewJWTService("test-secret", time.Hour),
		security.NewBcryptHasher(4),
	)
	h := NewHandler(svc)
	authMw := middleware.NewAuthMiddleware(svc)

	engine := gin.New()
	public := engine.Group("")
	h.RegisterPublicRoutes(public)

	protected := engine.Group("")
	protected.Use(authMw.Authenticate())
	h.RegisterRoutes(protected)
	return engine
}

func postJSON(engine *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	engine.ServeHTTP(w, req)
	return w
}

type tokenEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		User  model.PublicUser `json:"user"`
		Token string           `json:"token"`
	} `json:"data"`
}

func registerPayload() gin.H {
	return gin.H{
		"name":                  "Dr. Example",
		"email":                 "doc@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
		"role":                  "doctor",
	}
}

func register(t *testing.T, engine *gin.Engine) tokenEnvelope {
	t.Helper()
	w := postJSON(engine, "/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	engine := setupRouter()

	resp := register(t, engine)

	assert.True(t, resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "doc@example.com", resp.Data.User.Email)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	engine := setupRouter()

	payload := registerPayload()
	payload["password_confirmation"] = "different"

	w := postJSON(engine, "/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	engine := setupRouter()

	payload := registerPayload()
	payload["role"] = "admin"

	w := postJSON(engine, "/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRoundTrip(t *testing.T) {
	engine := setupRouter()
	register(t, engine)

	w := postJSON(engine, "/login", gin.H{
		"email":    "doc@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp tokenEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	engine := setupRouter()
	register(t, engine)

	w := postJSON(engine, "/login", gin.H{
		"email":    "doc@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	engine := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser(t *testing.T) {
	engine := setupRouter()
	resp := register(t, engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "doc@example.com")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	engine := setupRouter()
	resp := register(t, engine)

	w := postJSON(engine, "/logout", nil, resp.Data.Token)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token must stop working.
	after := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	engine.ServeHTTP(after, req)

	assert.Equal(t, http.StatusUnauthorized, after.Code)
}
