package handlers

import (
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

// Maintenance exported for testing purposes
type Maintenance struct {
	DB databases.MaintenanceDatabase
}

// MaintenanceRecordsHandler returns all maintenance records
func (m Maintenance) MaintenanceRecordsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if statut := r.URL.Query().Get("statut"); statut != "" {
		filter["entretien.statut"] = statut
	}

	dbResp, err := m.DB.Find(ctx, filter, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des entretiens", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MaintenanceRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// MaintenanceRecordByIDHandler returns a maintenance record by ID
func (m Maintenance) MaintenanceRecordByIDHandler(w http.ResponseWriter, r *http.Request) {
	maintenanceID := mux.Vars(r)["maintenance_id"]

	mID, err := primitive.ObjectIDFromHex(maintenanceID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.FindOne(ctx, bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("Entretien non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// MaintenanceRecordsByVehicleIDHandler returns all maintenance records for the given vehicle
func (m Maintenance) MaintenanceRecordsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.Find(ctx, bson.M{"entretien.vehiculeID": vehicleID}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des entretiens", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MaintenanceRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateMaintenanceRecordHandler schedules a maintenance for a vehicle
func (m Maintenance) CreateMaintenanceRecordHandler(w http.ResponseWriter, r *http.Request) {
	var details models.MaintenanceRecordDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VehiculeID == "" || details.TypeEntretien == "" {
		config.ErrorStatus("Le véhicule et le type d'entretien sont requis", http.StatusBadRequest, w, nil)
		return
	}

	if details.Statut == "" {
		details.Statut = models.EntretienPlanifie
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	record := models.MaintenanceRecord{ID: primitive.NewObjectID(), Details: details}
	if _, err := m.DB.InsertOne(ctx, record); err != nil {
		config.ErrorStatus("Erreur lors de la création de l'entretien", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, record)
}

// UpdateMaintenanceRecordHandler updates a maintenance record, including its
// status transitions done by the mechanic
func (m Maintenance) UpdateMaintenanceRecordHandler(w http.ResponseWriter, r *http.Request) {
	maintenanceID := mux.Vars(r)["maintenance_id"]

	mID, err := primitive.ObjectIDFromHex(maintenanceID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.MaintenanceRecordDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := m.DB.UpdateOne(ctx, bson.M{"_id": mID}, bson.M{"$set": bson.M{"entretien": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour de l'entretien", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Entretien non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Entretien mis à jour")
}

// DeleteMaintenanceRecordHandler deletes a maintenance record by ID
func (m Maintenance) DeleteMaintenanceRecordHandler(w http.ResponseWriter, r *http.Request) {
	maintenanceID := mux.Vars(r)["maintenance_id"]

	mID, err := primitive.ObjectIDFromHex(maintenanceID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := m.DB.DeleteOne(ctx, bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression de l'entretien", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Entretien non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Entretien supprimé")
}
