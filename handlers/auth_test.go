package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

func TestRegisterReturnsTokenTriple(t *testing.T) {
	env := newTestEnv(t)

	triple := env.register(t, "Asha", "asha@example.com")
	assert.NotEmpty(t, triple.AccessToken)
	assert.NotEmpty(t, triple.RefreshToken)
	assert.Equal(t, "bearer", triple.TokenType)

	// the access token must resolve to the freshly created user
	var user models.User
	require.NoError(t, env.db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.Equal(t, user.ID, env.userID(t, triple))
	assert.Equal(t, models.RoleOwner, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Asha", "asha@example.com")

	w := env.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     "Imposter",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "Email already registered", body["detail"])
}

func TestLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	reg := env.register(t, "Asha", "asha@example.com")

	w := env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login tokenTriple
	decode(t, w, &login)

	// register and login mint independently valid tokens for the same user
	assert.NotEqual(t, reg.RefreshToken, login.RefreshToken)
	assert.Equal(t, env.userID(t, reg), env.userID(t, login))
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Asha", "asha@example.com")

	for _, body := range []gin.H{
		{"email": "asha@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		w := env.do(t, http.MethodPost, "/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]string
		decode(t, w, &resp)
		// constant message regardless of which part was wrong
		assert.Equal(t, "Invalid email or password", resp["detail"])
	}
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	first := env.register(t, "Asha", "asha@example.com")

	// refresh succeeds and returns a new pair
	w := env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": first.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var second tokenTriple
	decode(t, w, &second)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the successor extends the chain exactly once
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": second.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var third tokenTriple
	decode(t, w, &third)
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": second.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// replaying the consumed token burned the whole chain, including the
	// otherwise-fresh tail
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": third.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": "no-such-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	triple := env.register(t, "Asha", "asha@example.com")

	require.NoError(t, env.db.Model(&models.RefreshToken{}).
		Where("token = ?", triple.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w := env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": triple.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// expiry is terminal: the token stays unusable even unrevoked
	var tok models.RefreshToken
	require.NoError(t, env.db.Where("token = ?", triple.RefreshToken).First(&tok).Error)
	assert.Equal(t, models.TokenExpired, tok.StateAt(time.Now()))
}

func TestRevokedTokenReuseRevokesWholeChain(t *testing.T) {
	env := newTestEnv(t)
	sessionA := env.register(t, "Asha", "asha@example.com")

	// a second live session for the same user
	w := env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var sessionB tokenTriple
	decode(t, w, &sessionB)

	// rotate session A, then replay the consumed token
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": sessionA.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": sessionA.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// replaying a revoked token killed every live token for the user
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": sessionB.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var live int64
	env.db.Model(&models.RefreshToken{}).
		Where("is_revoked = ?", false).Count(&live)
	assert.Zero(t, live)
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	triple := env.register(t, "Asha", "asha@example.com")

	w := env.do(t, http.MethodPost, "/auth/logout", "", gin.H{"refresh_token": triple.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	// revoking an already-revoked token is still a success
	w = env.do(t, http.MethodPost, "/auth/logout", "", gin.H{"refresh_token": triple.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	// but the token can no longer be refreshed
	w = env.do(t, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": triple.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/logout", "", gin.H{"refresh_token": "no-such-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)

	body := gin.H{"name": "Cafe", "address": "x", "latitude": 10.0, "longitude": 10.0}

	w := env.do(t, http.MethodPost, "/restaurants", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/restaurants", "not-a-jwt", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessTokenForDeletedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	triple := env.register(t, "Asha", "asha@example.com")

	require.NoError(t, env.db.Delete(&models.User{}, env.userID(t, triple)).Error)

	w := env.do(t, http.MethodPost, "/restaurants", triple.AccessToken,
		gin.H{"name": "Cafe", "address": "x", "latitude": 10.0, "longitude": 10.0})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
