package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email:    "a@b.com",
			Password: string(hashed),
			Nom:      "X",
			Prenom:   "Y",
			Role:     models.RoleConducteur,
			Statut:   models.StatutActif,
		},
	}
}

func loginAuth(userDecode func(v interface{}) error) handlers.Auth {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(userDecode)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "users").Return(conn)

	return handlers.Auth{
		DB:     databases.NewUserDatabase(db),
		Config: config.Config{JWTSecret: "test-secret"},
	}
}

// a wrong password and an unknown email must be indistinguishable to the
// caller, both the status code and the message
func TestAuth_LoginHandlerUniformFailure(t *testing.T) {
	unknownEmail := loginAuth(func(interface{}) error {
		return mongo.ErrNoDocuments
	})

	stored := activeUser(t, "secret1")
	wrongPassword := loginAuth(func(v interface{}) error {
		u := v.(**models.User)
		**u = *stored
		return nil
	})

	bodies := make([]string, 0, 2)
	for _, a := range []handlers.Auth{unknownEmail, wrongPassword} {
		body := bytes.NewBufferString(`{"email":"a@b.com","password":"wrong"}`)
		req := httptest.NewRequest("POST", "/api/auth/login", body)
		rr := httptest.NewRecorder()

		http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email ou mot de passe incorrect")
		bodies = append(bodies, rr.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuth_LoginHandlerSuccess(t *testing.T) {
	stored := activeUser(t, "secret1")
	a := loginAuth(func(v interface{}) error {
		u := v.(**models.User)
		**u = *stored
		return nil
	})

	body := bytes.NewBufferString(`{"email":"a@b.com","password":"secret1"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(a.LoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"token"`)
	assert.Contains(t, rr.Body.String(), `"a@b.com"`)
	// the password hash never leaves the server
	assert.NotContains(t, rr.Body.String(), stored.Details.Password)
}

func TestAuth_RegisterHandlerValidation(t *testing.T) {
	a := handlers.Auth{Config: config.Config{JWTSecret: "test-secret"}}

	body := bytes.NewBufferString(`{"email":"not-an-email","password":"abc"}`)
	req := httptest.NewRequest("POST", "/api/auth/register", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(a.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	// every failing rule is reported at once
	assert.Contains(t, rr.Body.String(), "L'email est invalide")
	assert.Contains(t, rr.Body.String(), "Le mot de passe doit contenir au moins 6 caractères")
	assert.Contains(t, rr.Body.String(), "Le nom est requis")
	assert.Contains(t, rr.Body.String(), "Le numéro d'employé est requis")
}

func TestAuth_RegisterHandlerDuplicateEmail(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "users").Return(conn)

	a := handlers.Auth{
		DB:     databases.NewUserDatabase(db),
		Config: config.Config{JWTSecret: "test-secret"},
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","password":"secret1","nom":"X","prenom":"Y","numeroEmploye":"E1"}`)
	req := httptest.NewRequest("POST", "/api/auth/register", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(a.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Un utilisateur avec cet email existe déjà")
}

func TestAuth_RegisterHandlerSuccess(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "users").Return(conn)

	a := handlers.Auth{
		DB:     databases.NewUserDatabase(db),
		Config: config.Config{JWTSecret: "test-secret"},
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","password":"secret1","nom":"X","prenom":"Y","numeroEmploye":"E1"}`)
	req := httptest.NewRequest("POST", "/api/auth/register", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(a.RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"token"`)
	// the default role applies when none was submitted
	assert.Contains(t, rr.Body.String(), `"role":"CONDUCTEUR"`)
	assert.NotContains(t, rr.Body.String(), "password")
}
