package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingHeader(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	rr := httptest.NewRecorder()

	auth.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token invalide ou expiré")
}

func TestMiddleware_NotBearer(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rr := httptest.NewRecorder()

	auth.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_TamperedToken(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	token, err := api.SignToken(testUser(), []byte("other-secret"), api.TokenTTL)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_AccountDeleted(t *testing.T) {
	user := testUser()
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, api.ErrInvalidToken)
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	token, err := api.SignToken(user, tokenSecret, api.TokenTTL)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_AccountInactive(t *testing.T) {
	user := testUser()
	user.Details.Statut = models.StatutSuspendu
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(user, nil)
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	token, err := api.SignToken(user, tokenSecret, api.TokenTTL)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_AttachesIdentity(t *testing.T) {
	user := testUser()
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(user, nil)
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	token, err := api.SignToken(user, tokenSecret, api.TokenTTL)
	assert.NoError(t, err)

	var got *models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = api.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	if assert.NotNil(t, got) {
		assert.Equal(t, user.ID.Hex(), got.ID)
		assert.Equal(t, user.Details.Email, got.Email)
		assert.Equal(t, models.RoleGestionnaire, got.Role)
	}
}

func TestOptional_SwallowsFailure(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	auth := api.Auth{DB: userDB, Secret: tokenSecret}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, api.IdentityFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	rr := httptest.NewRecorder()

	auth.Optional(next).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthorize_NoIdentity(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/api/vehicles/abc", nil)
	rr := httptest.NewRecorder()

	api.Authorize(models.RoleAdmin)(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authentification requise")
}

func TestAuthorize_WrongRole(t *testing.T) {
	identity := &models.Identity{
		ID:   primitive.NewObjectID().Hex(),
		Role: models.RoleConducteur,
	}

	req := httptest.NewRequest("DELETE", "/api/vehicles/abc", nil)
	req = req.WithContext(api.WithIdentity(req.Context(), identity))
	rr := httptest.NewRecorder()

	api.Authorize(models.RoleAdmin, models.RoleGestionnaire)(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Accès refusé")
}

func TestAuthorize_AllowedRole(t *testing.T) {
	identity := &models.Identity{
		ID:   primitive.NewObjectID().Hex(),
		Role: models.RoleGestionnaire,
	}

	req := httptest.NewRequest("DELETE", "/api/vehicles/abc", nil)
	req = req.WithContext(api.WithIdentity(req.Context(), identity))
	rr := httptest.NewRecorder()

	api.Authorize(models.RoleAdmin, models.RoleGestionnaire)(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
