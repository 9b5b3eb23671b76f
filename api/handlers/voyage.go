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

// Voyage exported for testing purposes
type Voyage struct {
	DB databases.VoyageDatabase
}

// VoyagesHandler returns all scheduled voyages
func (vo Voyage) VoyagesHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if statut := r.URL.Query().Get("statut"); statut != "" {
		filter["voyage.statut"] = statut
	}
	// logged-in drivers can restrict the listing to their own voyages
	if identity := api.IdentityFromContext(r.Context()); identity != nil && r.URL.Query().Get("mine") == "true" {
		filter["voyage.conducteurID"] = identity.ID
	}

	dbResp, err := vo.DB.Find(ctx, filter, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des voyages", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Voyage{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// VoyageByIDHandler returns a voyage by ID
func (vo Voyage) VoyageByIDHandler(w http.ResponseWriter, r *http.Request) {
	voyageID := mux.Vars(r)["voyage_id"]

	vID, err := primitive.ObjectIDFromHex(voyageID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := vo.DB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Voyage non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateVoyageHandler schedules a new passenger voyage
func (vo Voyage) CreateVoyageHandler(w http.ResponseWriter, r *http.Request) {
	var details models.VoyageDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VilleDepart == "" || details.VilleArrivee == "" || details.DateDepart == "" {
		config.ErrorStatus("La ville de départ, la ville d'arrivée et la date de départ sont requises", http.StatusBadRequest, w, nil)
		return
	}
	if details.PlacesTotal <= 0 {
		config.ErrorStatus("Le nombre de places doit être supérieur à zéro", http.StatusBadRequest, w, nil)
		return
	}
	if details.Prix < 0 {
		config.ErrorStatus("Le prix ne peut pas être négatif", http.StatusBadRequest, w, nil)
		return
	}

	if details.Statut == "" {
		details.Statut = models.VoyageProgramme
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	voyage := models.Voyage{ID: primitive.NewObjectID(), Details: details}
	if _, err := vo.DB.InsertOne(ctx, voyage); err != nil {
		config.ErrorStatus("Erreur lors de la création du voyage", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, voyage)
}

// UpdateVoyageHandler updates a voyage's details or status
func (vo Voyage) UpdateVoyageHandler(w http.ResponseWriter, r *http.Request) {
	voyageID := mux.Vars(r)["voyage_id"]

	vID, err := primitive.ObjectIDFromHex(voyageID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.VoyageDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := vo.DB.UpdateOne(ctx, bson.M{"_id": vID}, bson.M{"$set": bson.M{"voyage": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du voyage", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Voyage non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Voyage mis à jour")
}

// DeleteVoyageHandler deletes a voyage by ID
func (vo Voyage) DeleteVoyageHandler(w http.ResponseWriter, r *http.Request) {
	voyageID := mux.Vars(r)["voyage_id"]

	vID, err := primitive.ObjectIDFromHex(voyageID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := vo.DB.DeleteOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression du voyage", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Voyage non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Voyage supprimé")
}
