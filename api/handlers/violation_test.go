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
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func TestViolation_CreateViolationHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "violations").Return(conn)

	vio := handlers.Violation{DB: databases.NewViolationDatabase(db)}

	body := bytes.NewBufferString(`{"vehiculeID":"veh1","typeInfraction":"exces_vitesse","montant":90}`)
	req := httptest.NewRequest("POST", "/api/violations", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(vio.CreateViolationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	// a new violation starts pending payment
	assert.Contains(t, rr.Body.String(), `"statut":"EN_ATTENTE"`)
}

func TestViolation_CreateViolationHandlerMissingFields(t *testing.T) {
	db := &MockDatabaseHelper{}
	vio := handlers.Violation{DB: databases.NewViolationDatabase(db)}

	body := bytes.NewBufferString(`{"montant":90}`)
	req := httptest.NewRequest("POST", "/api/violations", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(vio.CreateViolationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestViolation_PayViolationHandlerAlreadyPaid(t *testing.T) {
	vID := primitive.NewObjectID()

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(func(v interface{}) error {
		vio := v.(**models.Violation)
		(**vio).ID = vID
		(**vio).Details = models.ViolationDetails{
			VehiculeID:     "veh1",
			TypeInfraction: "exces_vitesse",
			Montant:        90,
			Statut:         models.InfractionPayee,
		}
		return nil
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "violations").Return(conn)

	vio := handlers.Violation{
		DB:     databases.NewViolationDatabase(db),
		Config: config.Config{BaseURL: "http://localhost:3000"},
	}

	req := httptest.NewRequest("POST", "/api/violations/"+vID.Hex()+"/pay", nil)
	req = mux.SetURLVars(req, map[string]string{"violation_id": vID.Hex()})
	rr := httptest.NewRecorder()

	http.HandlerFunc(vio.PayViolationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "n'est pas en attente de paiement")
}

func TestViolation_ConfirmPaymentHandlerMissingSession(t *testing.T) {
	vio := handlers.Violation{}

	req := httptest.NewRequest("POST", "/api/violations/pay/confirm", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(vio.ConfirmPaymentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "La session de paiement est requise")
}
