package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func TestUser_UsersHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(0).(*[]models.User)
		*dest = []models.User{
			{ID: primitive.NewObjectID(), Details: models.UserDetails{
				Email: "a@b.com", Nom: "X", Role: models.RoleConducteur, Statut: models.StatutActif,
			}},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	req := httptest.NewRequest("GET", "/api/users", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(u.UsersHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "a@b.com")
	// the password hash is excluded from every user payload
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestUser_DeleteUserHandlerNotFound(t *testing.T) {
	uID := primitive.NewObjectID()

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	req := httptest.NewRequest("DELETE", "/api/users/"+uID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"user_id": uID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(u.DeleteUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
