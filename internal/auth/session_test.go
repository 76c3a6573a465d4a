package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	Init()

	token, err := CreateJWT("guest-123")
	require.NoError(t, err)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "guest-123", sub)

	_, err = AuthenticateJWT("not-a-token")
	assert.Error(t, err)
}

func TestEnsureGuestMintsAndReuses(t *testing.T) {
	Init()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	id, err := EnsureGuest(w, r)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "guest_token", cookies[0].Name)

	// A second request presenting the cookie resolves to the same id.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	w2 := httptest.NewRecorder()

	id2, err := EnsureGuest(w2, r2)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.Empty(t, w2.Result().Cookies())
}
