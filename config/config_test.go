package config_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestionparc/fleet-api/config"
)

func TestErrorStatus_Envelope(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	rr := httptest.NewRecorder()
	config.ErrorStatus("Véhicule non trouvé", http.StatusNotFound, rr, errors.New("mocked-error"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Véhicule non trouvé"}`, rr.Body.String())
}

func TestErrorStatus_DevelopmentExposesError(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	rr := httptest.NewRecorder()
	config.ErrorStatus("Erreur interne", http.StatusInternalServerError, rr, errors.New("mocked-error"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Erreur interne","error":"mocked-error"}`, rr.Body.String())
}

func TestRespondJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	config.RespondJSON(rr, http.StatusOK, map[string]string{"foo": "bar"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"foo":"bar"}}`, rr.Body.String())
}

func TestRespondMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	config.RespondMessage(rr, http.StatusOK, "Véhicule supprimé")

	assert.JSONEq(t, `{"success":true,"message":"Véhicule supprimé"}`, rr.Body.String())
}

func TestStatusFromDatabaseError(t *testing.T) {
	assert.Equal(t, http.StatusOK, config.StatusFromDatabaseError(nil))
	assert.Equal(t, http.StatusNotFound, config.StatusFromDatabaseError(mongo.ErrNoDocuments))
	assert.Equal(t, http.StatusInternalServerError, config.StatusFromDatabaseError(errors.New("mocked-error")))
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "fleet")
	t.Setenv("BASE_URL", "http://localhost:3000")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")

	conf := config.New()

	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "fleet", conf.DatabaseName)
	assert.Equal(t, "http://localhost:3000", conf.BaseURL)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "test-secret", conf.JWTSecret)
	assert.Equal(t, "development", conf.Env)
	assert.True(t, config.Development())
}
