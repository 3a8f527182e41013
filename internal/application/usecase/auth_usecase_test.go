// internal/application/usecase/auth_usecase_test.go
package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "catalog/internal/application/usecase"
)

func newAuthUsecase() *usecase.AuthUsecase {
	users := []usecase.Credential{{UserID: "1", Username: "admin", Password: "secret"}}
	return usecase.NewAuthUsecase(users, []byte("test-signing-key"), time.Hour)
}

func TestAuthLoginAndVerify(t *testing.T) {
	uc := newAuthUsecase()

	token, err := uc.Login("admin", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := uc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	uc := newAuthUsecase()

	_, err := uc.Login("admin", "nope")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, err = uc.Login("ghost", "secret")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestAuthVerify_TamperedToken(t *testing.T) {
	uc := newAuthUsecase()

	token, err := uc.Login("admin", "secret")
	require.NoError(t, err)

	_, err = uc.Verify(token + "x")
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)

	_, err = uc.Verify("")
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestAuthVerify_WrongKey(t *testing.T) {
	issuer := usecase.NewAuthUsecase(
		[]usecase.Credential{{UserID: "1", Username: "admin", Password: "secret"}},
		[]byte("other-key"), time.Hour)

	token, err := issuer.Login("admin", "secret")
	require.NoError(t, err)

	_, err = newAuthUsecase().Verify(token)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}
