// internal/application/usecase/auth_usecase.go
package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Credential is one entry of the static login list (single-user in practice,
// configured through the environment).
type Credential struct {
	UserID   string
	Username string
	Password string
}

// Claims is what the auth middleware places into the request context.
type Claims struct {
	UserID   string
	Username string
}

var (
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

// AuthUsecase issues and verifies HS256 login tokens against a static
// credential list. No user store is involved.
type AuthUsecase struct {
	users  []Credential
	secret []byte
	expiry time.Duration
}

func NewAuthUsecase(users []Credential, secret []byte, expiry time.Duration) *AuthUsecase {
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &AuthUsecase{users: users, secret: secret, expiry: expiry}
}

// Login returns a signed token for a matching credential.
func (u *AuthUsecase) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)

	var found *Credential
	for i := range u.users {
		if u.users[i].Username == username && u.users[i].Password == password {
			found = &u.users[i]
			break
		}
	}
	if found == nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   found.UserID,
		"username": found.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(u.expiry).Unix(),
	})
	signed, err := token.SignedString(u.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its claims.
func (u *AuthUsecase) Verify(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, _ := mc["userId"].(string)
	username, _ := mc["username"].(string)
	if username == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, Username: username}, nil
}
