package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/register", map[string]string{
		"username": "mara",
		"email":    "mara@example.com",
		"password": "sandalwood",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	decodeJSON(t, rec, &user)
	assert.Equal(t, "mara", user.Username)
	// the password hash never leaves the server
	assert.Empty(t, user.Password)

	rec = doJSON(t, e, http.MethodPost, "/api/login", map[string]string{
		"username": "mara",
		"password": "sandalwood",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	decodeJSON(t, rec, &session)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.ExpiresAt)
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/register", map[string]string{
		"username": "mara", "email": "mara@example.com", "password": "sandalwood",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/register", map[string]string{
		"username": "mara", "email": "other@example.com", "password": "sandalwood",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/register", map[string]string{
		"username": "other", "email": "mara@example.com", "password": "sandalwood",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/register", map[string]string{
		"username": "mara", "email": "mara@example.com", "password": "sandalwood",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/login", map[string]string{
		"username": "mara", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/login", map[string]string{
		"username": "nobody", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
