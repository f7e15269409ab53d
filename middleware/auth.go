package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	userIDKey      contextKey = "user_id"
	userEmailKey   contextKey = "user_email"
	isSuperuserKey contextKey = "is_superuser"
)

// Authenticator validates bearer tokens and loads the caller's identity
// into the request context.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(jwtSecret string) *Authenticator {
	return &Authenticator{secret: []byte(jwtSecret)}
}

// Authenticate rejects requests without a valid access token. Refresh
// tokens are not accepted here.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, "malformed authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(w, "invalid or expired token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w, "invalid token claims")
			return
		}
		if isRefresh, _ := claims["refresh"].(bool); isRefresh {
			unauthorized(w, "refresh token cannot be used for access")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			unauthorized(w, "invalid token claims")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, int(userIDFloat))
		if email, ok := claims["email"].(string); ok {
			ctx = context.WithValue(ctx, userEmailKey, email)
		}
		if isSuperuser, ok := claims["is_superuser"].(bool); ok {
			ctx = context.WithValue(ctx, isSuperuserKey, isSuperuser)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after Authenticate.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsSuperuser(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprintf(w, `{"error": %q}`+"\n", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error": %q}`+"\n", message)
}

// UserID returns the authenticated caller's id, or false when the
// request is anonymous.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

func UserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

func IsSuperuser(ctx context.Context) bool {
	is, _ := ctx.Value(isSuperuserKey).(bool)
	return is
}
