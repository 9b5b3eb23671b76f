package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// GPS exported for testing purposes
type GPS struct {
	DB  databases.GPSDatabase
	Hub *LiveHub
}

// CreateGPSRecordHandler ingests a position report and pushes it to the
// live-tracking hub
func (g GPS) CreateGPSRecordHandler(w http.ResponseWriter, r *http.Request) {
	var details models.GPSRecordDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VehiculeID == "" {
		config.ErrorStatus("Le véhicule est requis", http.StatusBadRequest, w, nil)
		return
	}
	if details.Latitude < -90 || details.Latitude > 90 || details.Longitude < -180 || details.Longitude > 180 {
		config.ErrorStatus("Coordonnées GPS invalides", http.StatusBadRequest, w, nil)
		return
	}

	if details.Horodatage == "" {
		details.Horodatage = timestamp()
	}
	details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	record := models.GPSRecord{ID: primitive.NewObjectID(), Details: details}
	if _, err := g.DB.InsertOne(ctx, record); err != nil {
		config.ErrorStatus("Erreur lors de l'enregistrement de la position", config.StatusFromDatabaseError(err), w, err)
		return
	}

	g.Hub.Broadcast(record)

	config.RespondJSON(w, http.StatusCreated, record)
}

// GPSRecordsHandler returns the most recent positions, newest first
func (g GPS) GPSRecordsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := findOptions(limit, skip).SetSort(bson.D{{Key: "position.horodatage", Value: -1}})
	dbResp, err := g.DB.Find(ctx, bson.M{}, opts)
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des positions", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.GPSRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// GPSRecordsByVehicleIDHandler returns the position history of a vehicle,
// newest first
func (g GPS) GPSRecordsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := findOptions(limit, skip).SetSort(bson.D{{Key: "position.horodatage", Value: -1}})
	dbResp, err := g.DB.Find(ctx, bson.M{"position.vehiculeID": vehicleID}, opts)
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des positions", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.GPSRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// LatestPositionHandler returns the last known position of a vehicle
func (g GPS) LatestPositionHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "position.horodatage", Value: -1}}).
		SetLimit(1)
	dbResp, err := g.DB.Find(ctx, bson.M{"position.vehiculeID": vehicleID}, opts)
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération de la position", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		config.ErrorStatus("Aucune position connue pour ce véhicule", http.StatusNotFound, w, nil)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp[0])
}
