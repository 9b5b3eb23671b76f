package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB databases.VehicleDatabase
}

// VehiclesHandler returns all vehicles
func (v Vehicle) VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if statut := r.URL.Query().Get("statut"); statut != "" {
		filter["vehicule.statut"] = statut
	}

	dbResp, err := v.DB.Find(ctx, filter, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des véhicules", config.StatusFromDatabaseError(err), w, err)
		return
	}
	// the frontend requires the data element to exist even when empty
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// VehicleByIDHandler returns a vehicle by ID
func (v Vehicle) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	zap.S().Debugf("vehicle_id: %v", vehicleID)

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := v.DB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Véhicule non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateVehicleHandler creates a vehicle. Immatriculation is unique across
// the fleet, a duplicate yields 409.
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var details models.VehicleDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.Immatriculation == "" || details.Marque == "" || details.Modele == "" {
		config.ErrorStatus("L'immatriculation, la marque et le modèle sont requis", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := v.DB.CountDocuments(ctx, bson.M{"vehicule.immatriculation": details.Immatriculation})
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("Un véhicule avec cette immatriculation existe déjà", http.StatusConflict, w, nil)
		return
	}

	if details.Statut == "" {
		details.Statut = models.VehiculeDisponible
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	vehicle := models.Vehicle{ID: primitive.NewObjectID(), Details: details}
	if _, err := v.DB.InsertOne(ctx, vehicle); err != nil {
		config.ErrorStatus("Erreur lors de la création du véhicule", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, vehicle)
}

// UpdateVehicleHandler updates a vehicle's details
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.VehicleDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if details.Immatriculation != "" {
		count, err := v.DB.CountDocuments(ctx, bson.M{
			"vehicule.immatriculation": details.Immatriculation,
			"_id":                      bson.M{"$ne": vID},
		})
		if err != nil {
			config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("Un véhicule avec cette immatriculation existe déjà", http.StatusConflict, w, nil)
			return
		}
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	matched, err := v.DB.UpdateOne(ctx, bson.M{"_id": vID}, bson.M{"$set": bson.M{"vehicule": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du véhicule", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Véhicule non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Véhicule mis à jour")
}

// DeleteVehicleHandler deletes a vehicle by ID. Deleting an id that does not
// exist, including a second delete of the same id, yields 404.
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := v.DB.DeleteOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression du véhicule", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Véhicule non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Véhicule supprimé")
}
