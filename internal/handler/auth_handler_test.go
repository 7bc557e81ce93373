package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"tripplanner/internal/auth"
	"tripplanner/internal/handler"
	"tripplanner/internal/model"
	"tripplanner/internal/router"
	"tripplanner/internal/service"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			updated := *user
			updated.UpdatedAt = time.Now()
			r.users[i] = &updated
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == identifier || u.Email == identifier })
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeTokenStore is an in-memory auth.TokenStoreInterface.
type fakeTokenStore struct {
	mu        sync.Mutex
	refresh   map[string]string
	blacklist map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{refresh: map[string]string{}, blacklist: map[string]bool{}}
}

func (s *fakeTokenStore) StoreRefreshToken(_ context.Context, tokenID, subject string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[tokenID] = subject
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(_ context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subject, ok := s.refresh[tokenID]
	if !ok {
		return "", auth.ErrRefreshTokenNotFound
	}
	return subject, nil
}

func (s *fakeTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, tokenID)
	return nil
}

func (s *fakeTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[tokenID] = true
	return nil
}

func (s *fakeTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blacklist[tokenID]
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestServer() *echo.Echo {
	jwtService := auth.NewJWTService("test-secret", "HS256", time.Hour, 7*24*time.Hour)
	tokenStore := newFakeTokenStore()
	authService := service.NewAuthService(&fakeUserRepo{}, jwtService, tokenStore)
	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, router.BearerAuth(jwtService, tokenStore))
	return e
}

func doJSON(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doLogin(e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const registerAlice = `{"email":"a@x.com","username":"alice","password":"Secur3!pass","full_name":"Alice"}`

func TestAuthFlow(t *testing.T) {
	e := newTestServer()

	// Register
	rec := doJSON(e, http.MethodPost, "/auth/register", registerAlice, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "alice", created["username"])
	assert.Equal(t, "a@x.com", created["email"])
	assert.Equal(t, true, created["is_active"])
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hash")

	// Duplicate email, different username
	rec = doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"a@x.com","username":"bob","password":"Secur3!pass"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")

	// Duplicate username, different email
	rec = doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"b@x.com","username":"alice","password":"Secur3!pass"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already taken")

	// Login by username
	rec = doLogin(e, "alice", "Secur3!pass")
	assert.Equal(t, http.StatusOK, rec.Code)

	var tokens map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	accessToken, _ := tokens["access_token"].(string)
	assert.NotEmpty(t, accessToken)
	assert.Equal(t, "bearer", tokens["token_type"])

	// Login by email works too
	rec = doLogin(e, "a@x.com", "Secur3!pass")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Current user
	rec = doJSON(e, http.MethodGet, "/auth/me", "", map[string]string{
		echo.HeaderAuthorization: "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "hash")

	// Missing token
	rec = doJSON(e, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/auth/register", registerAlice, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doLogin(e, "alice", "Wr0ng!pass")
	unknownUser := doLogin(e, "mallory", "Secur3!pass")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Bearer", wrongPassword.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestRegisterValidation(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "malformed email",
			body:    `{"email":"not-an-email","username":"alice","password":"Secur3!pass"}`,
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "username too short",
			body:    `{"email":"a@x.com","username":"al","password":"Secur3!pass"}`,
			wantMsg: "username must be at least 3 characters long",
		},
		{
			name:    "weak password lists failed rules",
			body:    `{"email":"a@x.com","username":"alice","password":"secret"}`,
			wantMsg: "password must contain at least one uppercase letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/auth/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestRefreshAndLogout(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/auth/register", registerAlice, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doLogin(e, "alice", "Secur3!pass")
	assert.Equal(t, http.StatusOK, rec.Code)

	var tokens map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	accessToken := tokens["access_token"].(string)
	refreshToken := tokens["refresh_token"].(string)
	assert.NotEmpty(t, refreshToken)

	// Refresh issues a new access token
	rec = doJSON(e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"`+refreshToken+`"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")

	// Logout revokes the refresh token and blacklists the access token
	rec = doJSON(e, http.MethodPost, "/auth/logout",
		`{"refresh_token":"`+refreshToken+`"}`, map[string]string{
			echo.HeaderAuthorization: "Bearer " + accessToken,
		})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"`+refreshToken+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/auth/me", "", map[string]string{
		echo.HeaderAuthorization: "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
