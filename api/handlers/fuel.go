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

// Fuel exported for testing purposes
type Fuel struct {
	DB  databases.FuelDatabase
	VDB databases.VehicleDatabase
}

// FuelRecordsHandler returns all fuel records
func (f Fuel) FuelRecordsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.Find(ctx, bson.M{}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des pleins", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.FuelRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// FuelRecordByIDHandler returns a fuel record by ID
func (f Fuel) FuelRecordByIDHandler(w http.ResponseWriter, r *http.Request) {
	fuelID := mux.Vars(r)["fuel_id"]

	fID, err := primitive.ObjectIDFromHex(fuelID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.FindOne(ctx, bson.M{"_id": fID})
	if err != nil {
		config.ErrorStatus("Plein non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// FuelRecordsByVehicleIDHandler returns all fuel records for the given vehicle
func (f Fuel) FuelRecordsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.Find(ctx, bson.M{"carburant.vehiculeID": vehicleID}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des pleins", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.FuelRecord{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateFuelRecordHandler records a refueling. The referenced vehicle must
// exist.
func (f Fuel) CreateFuelRecordHandler(w http.ResponseWriter, r *http.Request) {
	var details models.FuelRecordDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VehiculeID == "" || details.Quantite <= 0 || details.Montant < 0 {
		config.ErrorStatus("Le véhicule, la quantité et le montant sont requis", http.StatusBadRequest, w, nil)
		return
	}

	vID, err := primitive.ObjectIDFromHex(details.VehiculeID)
	if err != nil {
		config.ErrorStatus("Identifiant de véhicule invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := f.VDB.FindOne(ctx, bson.M{"_id": vID}); err != nil {
		config.ErrorStatus("Véhicule non trouvé", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now
	if details.Date == "" {
		details.Date = timestamp()
	}

	record := models.FuelRecord{ID: primitive.NewObjectID(), Details: details}
	if _, err := f.DB.InsertOne(ctx, record); err != nil {
		config.ErrorStatus("Erreur lors de l'enregistrement du plein", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, record)
}

// UpdateFuelRecordHandler updates a fuel record's details
func (f Fuel) UpdateFuelRecordHandler(w http.ResponseWriter, r *http.Request) {
	fuelID := mux.Vars(r)["fuel_id"]

	fID, err := primitive.ObjectIDFromHex(fuelID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.FuelRecordDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := f.DB.UpdateOne(ctx, bson.M{"_id": fID}, bson.M{"$set": bson.M{"carburant": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du plein", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Plein non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Plein mis à jour")
}

// DeleteFuelRecordHandler deletes a fuel record by ID
func (f Fuel) DeleteFuelRecordHandler(w http.ResponseWriter, r *http.Request) {
	fuelID := mux.Vars(r)["fuel_id"]

	fID, err := primitive.ObjectIDFromHex(fuelID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := f.DB.DeleteOne(ctx, bson.M{"_id": fID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression du plein", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Plein non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Plein supprimé")
}
