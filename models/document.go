package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document statuses
const (
	DocumentValide      = "VALIDE"
	DocumentExpire      = "EXPIRE"
	DocumentARenouveler = "A_RENOUVELER"
)

// Document types
const (
	DocumentCarteGrise        = "carte_grise"
	DocumentAssurance         = "assurance"
	DocumentControleTechnique = "controle_technique"
	DocumentAutre             = "autre"
)

// Document holds the structure for the document collection in mongo
type Document struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details DocumentDetails    `json:"document" bson:"document"`
	Version int32              `json:"__v" bson:"__v"`
}

// DocumentDetails holds the inner document structure, one row per
// administrative paper attached to a vehicle
type DocumentDetails struct {
	VehiculeID     string      `json:"vehiculeID" bson:"vehiculeID"`
	TypeDocument   string      `json:"typeDocument" bson:"typeDocument"`
	Nom            string      `json:"nom" bson:"nom"`
	DateExpiration string      `json:"dateExpiration" bson:"dateExpiration"`
	Statut         string      `json:"statut" bson:"statut"`
	URL            string      `json:"url" bson:"url"`
	CreatedAt      interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt      interface{} `json:"updatedAt" bson:"updatedAt"`
}
