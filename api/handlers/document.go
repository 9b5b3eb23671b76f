package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	cldapi "github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Document exported for testing purposes
type Document struct {
	DB databases.DocumentDatabase
}

// DocumentsHandler returns all vehicle documents
func (d Document) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if statut := r.URL.Query().Get("statut"); statut != "" {
		filter["document.statut"] = statut
	}

	dbResp, err := d.DB.Find(ctx, filter, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des documents", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Document{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// DocumentByIDHandler returns a document by ID
func (d Document) DocumentByIDHandler(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["document_id"]

	dID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := d.DB.FindOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("Document non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// DocumentsByVehicleIDHandler returns all documents attached to a vehicle
func (d Document) DocumentsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := d.DB.Find(ctx, bson.M{"document.vehiculeID": vehicleID}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des documents", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Document{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateDocumentHandler attaches an administrative document to a vehicle
func (d Document) CreateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var details models.DocumentDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VehiculeID == "" || details.TypeDocument == "" || details.Nom == "" {
		config.ErrorStatus("Le véhicule, le type et le nom du document sont requis", http.StatusBadRequest, w, nil)
		return
	}

	if details.Statut == "" {
		details.Statut = models.DocumentValide
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	document := models.Document{ID: primitive.NewObjectID(), Details: details}
	if _, err := d.DB.InsertOne(ctx, document); err != nil {
		config.ErrorStatus("Erreur lors de la création du document", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, document)
}

// UpdateDocumentHandler updates a document's details or status
func (d Document) UpdateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["document_id"]

	dID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.DocumentDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := d.DB.UpdateOne(ctx, bson.M{"_id": dID}, bson.M{"$set": bson.M{"document": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du document", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Document non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Document mis à jour")
}

// DeleteDocumentHandler deletes a document by ID
func (d Document) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["document_id"]

	dID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := d.DB.DeleteOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression du document", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Document non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Document supprimé")
}

// UploadSignatureHandler generates a signed payload the client uses to upload
// a scan directly to Cloudinary
func (d Document) UploadSignatureHandler(w http.ResponseWriter, r *http.Request) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	params := url.Values{}
	params.Set("timestamp", ts)
	params.Set("upload_preset", uploadPreset)

	signature, err := cldapi.SignParameters(params, apiSecret)
	if err != nil {
		config.ErrorStatus("Erreur lors de la génération de la signature", http.StatusInternalServerError, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, map[string]string{
		"timestamp": ts,
		"signature": signature,
	})
}
