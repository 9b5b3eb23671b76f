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

	"github.com/gestionparc/fleet-api/api/handlers"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/databases/mocks"
	"github.com/gestionparc/fleet-api/models"
)

func reservationHandler(voyage *models.Voyage, existing []models.Reservation) handlers.Reservation {
	db := &MockDatabaseHelper{}
	voyageConn := &mocks.CollectionHelper{}
	reservationConn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}
	cursor := &mocks.CursorHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(func(v interface{}) error {
		vo := v.(**models.Voyage)
		**vo = *voyage
		return nil
	})
	voyageConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(0).(*[]models.Reservation)
		*dest = existing
	}).Return(nil)
	reservationConn.On("Find", mock.Anything, mock.Anything).Return(cursor)
	reservationConn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)

	db.On("Collection", "voyages").Return(voyageConn)
	db.On("Collection", "reservations").Return(reservationConn)

	return handlers.Reservation{
		DB:    databases.NewReservationDatabase(db),
		VoyDB: databases.NewVoyageDatabase(db),
	}
}

func testVoyage(places int, prix float64) *models.Voyage {
	return &models.Voyage{
		ID: primitive.NewObjectID(),
		Details: models.VoyageDetails{
			VilleDepart:  "Libreville",
			VilleArrivee: "Franceville",
			DateDepart:   "2026-09-15T08:00:00Z",
			Prix:         prix,
			PlacesTotal:  places,
			Statut:       models.VoyageProgramme,
		},
	}
}

func confirmedReservation(voyageID string, places int) models.Reservation {
	return models.Reservation{
		ID: primitive.NewObjectID(),
		Details: models.ReservationDetails{
			VoyageID: voyageID,
			NbPlaces: places,
			Statut:   models.ReservationConfirmee,
		},
	}
}

func TestReservation_CreateReservationHandlerFull(t *testing.T) {
	voyage := testVoyage(4, 10000)
	re := reservationHandler(voyage, []models.Reservation{
		confirmedReservation(voyage.ID.Hex(), 3),
	})

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"voyageID":%q,"nomPassager":"Obame","nbPlaces":2}`, voyage.ID.Hex()))
	req := httptest.NewRequest("POST", "/api/reservations", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(re.CreateReservationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Plus assez de places disponibles")
}

func TestReservation_CreateReservationHandler(t *testing.T) {
	voyage := testVoyage(4, 10000)
	re := reservationHandler(voyage, []models.Reservation{
		confirmedReservation(voyage.ID.Hex(), 1),
	})

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"voyageID":%q,"nomPassager":"Obame","nbPlaces":2,"montantTotal":1}`, voyage.ID.Hex()))
	req := httptest.NewRequest("POST", "/api/reservations", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(re.CreateReservationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	// the amount is recomputed from the voyage price, not trusted from the body
	assert.Contains(t, rr.Body.String(), `"montantTotal":20000`)
	assert.Contains(t, rr.Body.String(), `"statut":"CONFIRMEE"`)
}

func TestReservation_CreateReservationHandlerClosedVoyage(t *testing.T) {
	voyage := testVoyage(4, 10000)
	voyage.Details.Statut = models.VoyageAnnule
	re := reservationHandler(voyage, nil)

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"voyageID":%q,"nomPassager":"Obame","nbPlaces":1}`, voyage.ID.Hex()))
	req := httptest.NewRequest("POST", "/api/reservations", body)
	rr := httptest.NewRecorder()

	http.HandlerFunc(re.CreateReservationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "n'accepte plus de réservations")
}

func TestReservation_CancelReservationHandlerTwice(t *testing.T) {
	rID := primitive.NewObjectID()

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	statut := models.ReservationConfirmee
	singleResult.On("Decode", mock.Anything).Return(func(v interface{}) error {
		re := v.(**models.Reservation)
		(**re).ID = rID
		(**re).Details = models.ReservationDetails{VoyageID: "v1", NbPlaces: 1, Statut: statut}
		return nil
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "reservations").Return(conn)

	re := handlers.Reservation{DB: databases.NewReservationDatabase(db)}

	req := httptest.NewRequest("PUT", "/api/reservations/"+rID.Hex()+"/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"reservation_id": rID.Hex()})

	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CancelReservationHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Réservation annulée")

	// once cancelled, a second cancel conflicts
	statut = models.ReservationAnnulee
	rr = httptest.NewRecorder()
	http.HandlerFunc(re.CancelReservationHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "déjà annulée")
}
