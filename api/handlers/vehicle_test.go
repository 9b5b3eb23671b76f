package handlers_test

import (
	"bytes"
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

type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if rf, ok := ret.Get(0).(func() databases.ClientHelper); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.ClientHelper)
		}
	}

	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if rf, ok := ret.Get(0).(func(string) databases.CollectionHelper); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.CollectionHelper)
		}
	}

	return r0
}

func TestVehicle_VehiclesHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(0).(*[]models.Vehicle)
		*dest = []models.Vehicle{
			{ID: primitive.NewObjectID(), Details: models.VehicleDetails{Immatriculation: "AB-123-CD"}},
			{ID: primitive.NewObjectID(), Details: models.VehicleDetails{Immatriculation: "EF-456-GH"}},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor)
	db.On("Collection", "vehicles").Return(conn)

	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(v.VehiclesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
	assert.Contains(t, rr.Body.String(), "AB-123-CD")
	assert.Contains(t, rr.Body.String(), "EF-456-GH")
}

func TestVehicle_CreateVehicleHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "vehicles").Return(conn)

	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	body := bytes.NewBufferString(`{"immatriculation":"AB-123-CD","marque":"Renault","modele":"Clio","annee":2021}`)
	req := httptest.NewRequest("POST", "/api/vehicles", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "AB-123-CD")
	assert.Contains(t, rr.Body.String(), `"statut":"DISPONIBLE"`)
}

func TestVehicle_CreateVehicleHandlerDuplicatePlate(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "vehicles").Return(conn)

	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	body := bytes.NewBufferString(`{"immatriculation":"AB-123-CD","marque":"Renault","modele":"Clio"}`)
	req := httptest.NewRequest("POST", "/api/vehicles", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Un véhicule avec cette immatriculation existe déjà")
}

func TestVehicle_CreateVehicleHandlerMissingFields(t *testing.T) {
	db := &MockDatabaseHelper{}
	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	body := bytes.NewBufferString(`{"marque":"Renault"}`)
	req := httptest.NewRequest("POST", "/api/vehicles", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVehicle_DeleteVehicleHandlerTwice(t *testing.T) {
	vID := primitive.NewObjectID()

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	// first delete removes the vehicle, the second matches nothing
	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	db.On("Collection", "vehicles").Return(conn)

	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	req := httptest.NewRequest("DELETE", "/api/vehicles/"+vID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": vID.Hex()})

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.DeleteVehicleHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Véhicule supprimé")

	rr = httptest.NewRecorder()
	http.HandlerFunc(v.DeleteVehicleHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Véhicule non trouvé")
}

func TestVehicle_DeleteVehicleHandlerBadID(t *testing.T) {
	db := &MockDatabaseHelper{}
	v := handlers.Vehicle{DB: databases.NewVehicleDatabase(db)}

	req := httptest.NewRequest("DELETE", "/api/vehicles/not-an-id", nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": "not-an-id"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(v.DeleteVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
