// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	usecase "catalog/internal/application/usecase"
)

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var ctxKeyUser = ctxKey{name: "currentUser"}

// TokenVerifier is the piece of the auth usecase this middleware needs.
type TokenVerifier interface {
	Verify(token string) (usecase.Claims, error)
}

// AuthMiddleware は
//
//   - Authorization: Bearer <TOKEN>（または token クッキー）
//
// を検証し、ログインユーザーを context に詰めて次のハンドラへ渡す。
type AuthMiddleware struct {
	Verifier TokenVerifier
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		token := bearerToken(r)
		if token == "" {
			// The login flow sets an httpOnly cookie; accept it as fallback.
			if c, err := r.Cookie("token"); err == nil {
				token = strings.TrimSpace(c.Value)
			}
		}
		if token == "" {
			writeUnauthorized(w, "Unauthorized: No token provided")
			return
		}

		claims, err := m.Verifier.Verify(token)
		if err != nil {
			writeUnauthorized(w, "Unauthorized: Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// UserFrom returns the authenticated user stored by AuthMiddleware.
func UserFrom(ctx context.Context) (usecase.Claims, bool) {
	c, ok := ctx.Value(ctxKeyUser).(usecase.Claims)
	return c, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
