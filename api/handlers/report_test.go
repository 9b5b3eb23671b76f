package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
)

func TestReport_DashboardHandler(t *testing.T) {
	db := &MockDatabaseHelper{}

	vehicleConn := &mocks.CollectionHelper{}
	vehicleConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(5), nil)

	violationConn := &mocks.CollectionHelper{}
	violationConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(2), nil)

	documentConn := &mocks.CollectionHelper{}
	documentConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	maintenanceConn := &mocks.CollectionHelper{}
	maintenanceConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(3), nil)

	fuelConn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}
	cursor.On("Decode", mock.Anything).Return(func(v interface{}) error {
		return json.Unmarshal([]byte(`[{"total":1234.5}]`), v)
	})
	fuelConn.On("Aggregate", mock.Anything, mock.Anything).Return(cursor, nil)

	db.On("Collection", "vehicles").Return(vehicleConn)
	db.On("Collection", "violations").Return(violationConn)
	db.On("Collection", "documents").Return(documentConn)
	db.On("Collection", "maintenancerecords").Return(maintenanceConn)
	db.On("Collection", "fuelrecords").Return(fuelConn)

	rep := handlers.Report{
		VDB:   databases.NewVehicleDatabase(db),
		FDB:   databases.NewFuelDatabase(db),
		VioDB: databases.NewViolationDatabase(db),
		DDB:   databases.NewDocumentDatabase(db),
		MDB:   databases.NewMaintenanceDatabase(db),
	}

	req := httptest.NewRequest("GET", "/api/reports/dashboard", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(rep.DashboardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":5`)
	assert.Contains(t, rr.Body.String(), `"infractionsEnAttente":2`)
	assert.Contains(t, rr.Body.String(), `"carburantMoisCourant":1234.5`)
	assert.Contains(t, rr.Body.String(), `"documentsAExpirer":1`)
	assert.Contains(t, rr.Body.String(), `"entretiensAVenir":3`)
}
