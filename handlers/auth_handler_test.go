package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gridironlabs/gridiron-system/middleware"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
	"github.com/gridironlabs/gridiron-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "handler-test-secret"

type memoryUserRepository struct {
	users  map[int]*models.User
	nextID int
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[int]*models.User), nextID: 1}
}

func (m *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserRepository) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *memoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserRepository) Delete(_ context.Context, id int) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepository) List(_ context.Context, limit, offset int) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *memoryUserRepository) SetActive(_ context.Context, id int, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (m *memoryUserRepository) UpdateLastLogin(_ context.Context, id int, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func newAuthTestServer(t *testing.T) (*httptest.Server, *memoryUserRepository) {
	t.Helper()

	repo := newMemoryUserRepository()
	authService := services.NewAuthService(repo, testJWTSecret, 2*time.Hour, 7*24*time.Hour)
	handler := NewAuthHandler(authService)
	auth := middleware.NewAuthenticator(testJWTSecret)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/token", handler.Token)
		r.Post("/refresh", handler.Refresh)
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Get("/me", handler.Me)
			r.Put("/me", handler.UpdateMe)
			r.Delete("/me", handler.DeleteMe)
		})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, repo
}

func postJSON(t *testing.T, url string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerUser(t *testing.T, server *httptest.Server, email, username, password string) {
	t.Helper()
	resp := postJSON(t, server.URL+"/auth/register", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func obtainTokens(t *testing.T, server *httptest.Server, identity, password string) (string, string) {
	t.Helper()
	resp := postJSON(t, server.URL+"/auth/token", map[string]string{
		"identity": identity,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["access_token"].(string), body["refresh_token"].(string)
}

func TestRegisterEndpoint(t *testing.T) {
	server, _ := newAuthTestServer(t)

	resp := postJSON(t, server.URL+"/auth/register", map[string]string{
		"email":    "new@example.com",
		"username": "newcomer",
		"password": "Passw0rd",
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "newcomer", user["username"])

	// The hash never leaves the server.
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	server, _ := newAuthTestServer(t)
	registerUser(t, server, "dup@example.com", "original", "Passw0rd")

	resp := postJSON(t, server.URL+"/auth/register", map[string]string{
		"email":    "dup@example.com",
		"username": "impostor",
		"password": "Passw0rd",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterDuplicateUsernameReturns400(t *testing.T) {
	server, _ := newAuthTestServer(t)
	registerUser(t, server, "first@example.com", "taken", "Passw0rd")

	resp := postJSON(t, server.URL+"/auth/register", map[string]string{
		"email":    "second@example.com",
		"username": "taken",
		"password": "Passw0rd",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	server, _ := newAuthTestServer(t)

	resp := postJSON(t, server.URL+"/auth/register", map[string]interface{}{
		"email":        "strict@example.com",
		"username":     "strict",
		"password":     "Passw0rd",
		"is_superuser": true,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTokenEndpoint(t *testing.T) {
	server, _ := newAuthTestServer(t)
	registerUser(t, server, "login@example.com", "loginuser", "Passw0rd")

	t.Run("valid credentials", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/auth/token", map[string]string{
			"identity": "login@example.com",
			"password": "Passw0rd",
		}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])
		assert.Equal(t, "bearer", body["token_type"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/auth/token", map[string]string{
			"identity": "login@example.com",
			"password": "Wrong0Pass",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestRefreshEndpoint(t *testing.T) {
	server, _ := newAuthTestServer(t)
	registerUser(t, server, "refresh@example.com", "refresher", "Passw0rd")
	accessToken, refreshToken := obtainTokens(t, server, "refresher", "Passw0rd")

	t.Run("valid refresh token issues a new access token", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/auth/refresh", map[string]string{
			"refresh_token": refreshToken,
		}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["access_token"])
	})

	t.Run("access token is rejected", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/auth/refresh", map[string]string{
			"refresh_token": accessToken,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestMeEndpoints(t *testing.T) {
	server, _ := newAuthTestServer(t)
	registerUser(t, server, "me@example.com", "myself", "Passw0rd")
	accessToken, refreshToken := obtainTokens(t, server, "myself", "Passw0rd")
	bearer := map[string]string{"Authorization": "Bearer " + accessToken}

	t.Run("requires authentication", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/auth/me")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("returns the profile", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "me@example.com", user["email"])
	})

	t.Run("update profile", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{
			"username":         "renamed",
			"current_password": "Passw0rd",
		})
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPut, server.URL+"/auth/me", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer["Authorization"])
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "renamed", user["username"])
	})

	t.Run("delete account", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, server.URL+"/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", bearer["Authorization"])
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		// The token still parses, but the user is gone.
		req, err = http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", bearer["Authorization"])
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	server, _ := newAuthTestServer(t)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer bad extra"} {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", header)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("header %q", header))
		resp.Body.Close()
	}
}

// Tokens signed with anything but HMAC must be rejected, including the
// classic alg=none downgrade.
func TestNonHMACTokenRejected(t *testing.T) {
	server, _ := newAuthTestServer(t)

	claims := jwt.MapClaims{
		"sub":          "forger",
		"user_id":      1,
		"email":        "forger@example.com",
		"is_superuser": true,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
