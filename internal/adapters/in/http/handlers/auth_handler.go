// internal/adapters/in/http/handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	usecase "catalog/internal/application/usecase"
)

// AuthHandler は /api/auth 関連のエンドポイントを担当します。
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) http.Handler {
	return &AuthHandler{uc: uc}
}

const loginCookieMaxAge = 7 * 24 * 60 * 60 // seconds; matches token expiry default

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		h.login(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/logout":
		h.logout(w, r)
	default:
		notFoundRoute(w)
	}
}

// ------------------------------------------------------------
// POST /api/auth/login
//   body: { "username": "...", "password": "..." }
//   成功時は httpOnly クッキーにトークンを載せる
// ------------------------------------------------------------

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if body.Username == "" {
		writeMessage(w, http.StatusBadRequest, "Username is required and must be a string")
		return
	}
	if body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Password is required and must be a string")
		return
	}

	token, err := h.uc.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("[AuthHandler] login failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   loginCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	writeMessage(w, http.StatusOK, "Login successful")
}

// ------------------------------------------------------------
// POST /api/auth/logout
// ------------------------------------------------------------

func (h *AuthHandler) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	writeMessage(w, http.StatusOK, "Logout successful")
}
