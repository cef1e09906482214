package services

import (
	"testing"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.False(t, resp.User.IsAdmin)
	assert.False(t, resp.User.CanDraw, "new accounts start without drawing rights")
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	cases := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"missing fields", dto.RegisterRequest{}},
		{"short username", dto.RegisterRequest{Username: "ab", Password: "secret123"}},
		{"short password", dto.RegisterRequest{Username: "alice", Password: "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(&tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthServiceRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Password: "other456"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthServiceLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// The token must carry the account ID and round-trip with the secret.
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.NotEmpty(t, claims["sub"])
	assert.NotEmpty(t, claims["jti"])
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceGetUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	user := seedUser(t, db, "alice", false, true)

	got, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
