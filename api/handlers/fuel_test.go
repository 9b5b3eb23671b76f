package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func TestFuel_CreateFuelRecordHandlerUnknownVehicle(t *testing.T) {
	db := &MockDatabaseHelper{}
	vehicleConn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	vehicleConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "vehicles").Return(vehicleConn)

	f := handlers.Fuel{
		DB:  databases.NewFuelDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
	}

	vID := primitive.NewObjectID().Hex()
	body := bytes.NewBufferString(fmt.Sprintf(`{"vehiculeID":%q,"quantite":42.5,"montant":78.2}`, vID))
	req := httptest.NewRequest("POST", "/api/fuel", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(f.CreateFuelRecordHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Véhicule non trouvé")
}

func TestFuel_CreateFuelRecordHandlerInvalidQuantity(t *testing.T) {
	db := &MockDatabaseHelper{}
	f := handlers.Fuel{
		DB:  databases.NewFuelDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
	}

	body := bytes.NewBufferString(`{"vehiculeID":"abc","quantite":0}`)
	req := httptest.NewRequest("POST", "/api/fuel", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(f.CreateFuelRecordHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFuel_CreateFuelRecordHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	vehicleConn := &mocks.CollectionHelper{}
	fuelConn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(nil)
	vehicleConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	fuelConn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "vehicles").Return(vehicleConn)
	db.On("Collection", "fuelrecords").Return(fuelConn)

	f := handlers.Fuel{
		DB:  databases.NewFuelDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
	}

	vID := primitive.NewObjectID().Hex()
	body := bytes.NewBufferString(fmt.Sprintf(`{"vehiculeID":%q,"quantite":42.5,"montant":78.2,"station":"Total"}`, vID))
	req := httptest.NewRequest("POST", "/api/fuel", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(f.CreateFuelRecordHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"station":"Total"`)
	// the server stamps the refueling date when none was submitted
	assert.Contains(t, rr.Body.String(), `"date":"`)
}

func TestFuel_FuelRecordsByVehicleIDHandler(t *testing.T) {
	vID := primitive.NewObjectID().Hex()

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(0).(*[]models.FuelRecord)
		*dest = []models.FuelRecord{
			{ID: primitive.NewObjectID(), Details: models.FuelRecordDetails{VehiculeID: vID, Quantite: 40}},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor)
	db.On("Collection", "fuelrecords").Return(conn)

	f := handlers.Fuel{DB: databases.NewFuelDatabase(db)}

	req := httptest.NewRequest("GET", "/api/fuel/vehicle/"+vID, nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": vID})
	rr := httptest.NewRecorder()

	http.HandlerFunc(f.FuelRecordsByVehicleIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), vID)
}
