package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Voyage statuses
const (
	VoyageProgramme = "PROGRAMME"
	VoyageEnCours   = "EN_COURS"
	VoyageTermine   = "TERMINE"
	VoyageAnnule    = "ANNULE"
)

// Voyage holds the structure for the voyage collection in mongo, part of the
// TRAVEGAB passenger transport module
type Voyage struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details VoyageDetails      `json:"voyage" bson:"voyage"`
	Version int32              `json:"__v" bson:"__v"`
}

// VoyageDetails holds the inner voyage structure
type VoyageDetails struct {
	VilleDepart  string      `json:"villeDepart" bson:"villeDepart"`
	VilleArrivee string      `json:"villeArrivee" bson:"villeArrivee"`
	DateDepart   string      `json:"dateDepart" bson:"dateDepart"`
	VehiculeID   string      `json:"vehiculeID" bson:"vehiculeID"`
	ConducteurID string      `json:"conducteurID" bson:"conducteurID"`
	Prix         float64     `json:"prix" bson:"prix"`
	PlacesTotal  int         `json:"placesTotal" bson:"placesTotal"`
	Statut       string      `json:"statut" bson:"statut"`
	CreatedAt    interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt    interface{} `json:"updatedAt" bson:"updatedAt"`
}
