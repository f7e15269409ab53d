package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepository is an in-memory stand-in for the postgres repository.
type fakeUserRepository struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepository) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	for id, u := range f.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) List(_ context.Context, limit, offset int) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepository) SetActive(_ context.Context, id int, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepository) UpdateLastLogin(_ context.Context, id int, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func newTestAuthService() (AuthService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewAuthService(repo, "test-secret", 2*time.Hour, 7*24*time.Hour), repo
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing email", RegisterInput{Username: "sharp", Password: "Passw0rd"}, ErrEmailRequired},
		{"bad email", RegisterInput{Email: "not-an-email", Username: "sharp", Password: "Passw0rd"}, ErrEmailInvalid},
		{"short username", RegisterInput{Email: "a@b.io", Username: "ab", Password: "Passw0rd"}, ErrUsernameTooShort},
		{"short password", RegisterInput{Email: "a@b.io", Username: "sharp", Password: "Pw0"}, ErrPasswordTooWeak},
		{"no uppercase", RegisterInput{Email: "a@b.io", Username: "sharp", Password: "passw0rd"}, ErrPasswordTooWeak},
		{"no digit", RegisterInput{Email: "a@b.io", Username: "sharp", Password: "Password"}, ErrPasswordTooWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Sharp@Example.COM ",
		Username: "sharp",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "sharp@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Passw0rd", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "first", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Username: "second", Password: "Passw0rd"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "bettor@example.com", Username: "bettor", Password: "Passw0rd"})
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		user, tokens, err := svc.Login(ctx, LoginInput{Identity: "bettor@example.com", Password: "Passw0rd"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "bearer", tokens.TokenType)
		assert.Equal(t, int((2 * time.Hour).Seconds()), tokens.ExpiresIn)
	})

	t.Run("by username", func(t *testing.T) {
		user, _, err := svc.Login(ctx, LoginInput{Identity: "bettor", Password: "Passw0rd"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Identity: "bettor", Password: "Wrong0Pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Identity: "nobody", Password: "Passw0rd"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "gone@example.com", Username: "gone", Password: "Passw0rd"})
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, user.ID, false))

	_, _, err = svc.Login(ctx, LoginInput{Identity: "gone", Password: "Passw0rd"})
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "fresh@example.com", Username: "fresh", Password: "Passw0rd"})
	require.NoError(t, err)
	_, tokens, err := svc.Login(ctx, LoginInput{Identity: "fresh", Password: "Passw0rd"})
	require.NoError(t, err)

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		pair, err := svc.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, ErrNotRefreshToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":     "fresh",
			"user_id": 1,
			"refresh": true,
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshInactiveUser(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "benched@example.com", Username: "benched", Password: "Passw0rd"})
	require.NoError(t, err)
	_, tokens, err := svc.Login(ctx, LoginInput{Identity: "benched", Password: "Passw0rd"})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, user.ID, false))

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "edit@example.com", Username: "editor", Password: "Passw0rd"})
	require.NoError(t, err)

	t.Run("credential change requires current password", func(t *testing.T) {
		newEmail := "new@example.com"
		_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &newEmail})
		assert.ErrorIs(t, err, ErrCurrentPasswordMiss)
	})

	t.Run("wrong current password", func(t *testing.T) {
		newEmail := "new@example.com"
		_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &newEmail, CurrentPassword: "Wrong0Pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email change", func(t *testing.T) {
		newEmail := "New@Example.com"
		updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &newEmail, CurrentPassword: "Passw0rd"})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("password change allows login with new password", func(t *testing.T) {
		newPassword := "Fresh3rPass"
		_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Password: &newPassword, CurrentPassword: "Passw0rd"})
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, LoginInput{Identity: "editor", Password: newPassword})
		assert.NoError(t, err)
	})

	t.Run("preferences update needs no password", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Preferences: []byte(`{"theme":"dark"}`)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"theme":"dark"}`, string(updated.Preferences))
	})
}

func TestDeleteAccount(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "bye@example.com", Username: "leaver", Password: "Passw0rd"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))
	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID), ErrUserNotFound)

	_, err = svc.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
