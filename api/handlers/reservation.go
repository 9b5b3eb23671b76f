package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Reservation exported for testing purposes
type Reservation struct {
	DB    databases.ReservationDatabase
	VoyDB databases.VoyageDatabase
}

// ReservationsHandler returns all passenger reservations
func (re Reservation) ReservationsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.DB.Find(ctx, bson.M{}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des réservations", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Reservation{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// ReservationByIDHandler returns a reservation by ID
func (re Reservation) ReservationByIDHandler(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservation_id"]

	rID, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.DB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("Réservation non trouvée", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// ReservationsByVoyageIDHandler returns all reservations booked on a voyage
func (re Reservation) ReservationsByVoyageIDHandler(w http.ResponseWriter, r *http.Request) {
	voyageID := mux.Vars(r)["voyage_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.DB.Find(ctx, bson.M{"reservation.voyageID": voyageID}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des réservations", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Reservation{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateReservationHandler books seats on a voyage. The booking is refused
// when the remaining confirmed seats cannot cover the request; the total
// amount is always recomputed server-side from the voyage price.
func (re Reservation) CreateReservationHandler(w http.ResponseWriter, r *http.Request) {
	var details models.ReservationDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VoyageID == "" || details.NomPassager == "" {
		config.ErrorStatus("Le voyage et le nom du passager sont requis", http.StatusBadRequest, w, nil)
		return
	}
	if details.NbPlaces <= 0 {
		config.ErrorStatus("Le nombre de places doit être supérieur à zéro", http.StatusBadRequest, w, nil)
		return
	}

	vID, err := primitive.ObjectIDFromHex(details.VoyageID)
	if err != nil {
		config.ErrorStatus("Identifiant de voyage invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	voyage, err := re.VoyDB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Voyage non trouvé", http.StatusNotFound, w, err)
		return
	}
	if voyage.Details.Statut != models.VoyageProgramme {
		config.ErrorStatus("Ce voyage n'accepte plus de réservations", http.StatusConflict, w, nil)
		return
	}

	booked, err := re.bookedSeats(ctx, details.VoyageID)
	if err != nil {
		config.ErrorStatus("Erreur lors de la vérification des places disponibles", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if booked+details.NbPlaces > voyage.Details.PlacesTotal {
		config.ErrorStatus("Plus assez de places disponibles sur ce voyage", http.StatusConflict, w, nil)
		return
	}

	details.Statut = models.ReservationConfirmee
	details.MontantTotal = voyage.Details.Prix * float64(details.NbPlaces)
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	reservation := models.Reservation{ID: primitive.NewObjectID(), Details: details}
	if _, err := re.DB.InsertOne(ctx, reservation); err != nil {
		config.ErrorStatus("Erreur lors de la création de la réservation", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, reservation)
}

// CancelReservationHandler cancels a confirmed reservation, freeing its seats
func (re Reservation) CancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservation_id"]

	rID, err := primitive.ObjectIDFromHex(reservationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reservation, err := re.DB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("Réservation non trouvée", http.StatusNotFound, w, err)
		return
	}
	if reservation.Details.Statut == models.ReservationAnnulee {
		config.ErrorStatus("Cette réservation est déjà annulée", http.StatusConflict, w, nil)
		return
	}

	_, err = re.DB.UpdateOne(ctx, bson.M{"_id": rID}, bson.M{"$set": bson.M{
		"reservation.statut":    models.ReservationAnnulee,
		"reservation.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("Erreur lors de l'annulation de la réservation", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Réservation annulée")
}

// bookedSeats sums the seats held by confirmed reservations on a voyage
func (re Reservation) bookedSeats(ctx context.Context, voyageID string) (int, error) {
	reservations, err := re.DB.Find(ctx, bson.M{
		"reservation.voyageID": voyageID,
		"reservation.statut":   models.ReservationConfirmee,
	})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range reservations {
		total += r.Details.NbPlaces
	}
	return total, nil
}
