package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func TestVoyage_VoyagesHandlerAnonymous(t *testing.T) {
	var db MockDatabaseHelper
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	var gotFilter bson.M
	cursor.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotFilter, _ = args.Get(1).(bson.M)
	}).Return(cursor)
	db.On("Collection", "voyages").Return(conn)

	voy := handlers.Voyage{DB: databases.NewVoyageDatabase(&db)}

	req := httptest.NewRequest("GET", "/api/voyages?mine=true", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(voy.VoyagesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, gotFilter, "voyage.conducteurID")
}

func TestVoyage_VoyagesHandlerMineFilter(t *testing.T) {
	var db MockDatabaseHelper
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	var gotFilter bson.M
	cursor.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotFilter, _ = args.Get(1).(bson.M)
	}).Return(cursor)
	db.On("Collection", "voyages").Return(conn)

	voy := handlers.Voyage{DB: databases.NewVoyageDatabase(&db)}

	req := httptest.NewRequest("GET", "/api/voyages?mine=true", nil)
	identity := &models.Identity{ID: "64c13ab08edf48a008793cac", Role: models.RoleConducteur}
	req = req.WithContext(api.WithIdentity(req.Context(), identity))
	rr := httptest.NewRecorder()

	http.HandlerFunc(voy.VoyagesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, identity.ID, gotFilter["voyage.conducteurID"])
}
