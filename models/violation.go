package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Violation statuses
const (
	InfractionEnAttente = "EN_ATTENTE"
	InfractionPayee     = "PAYEE"
	InfractionContestee = "CONTESTEE"
	InfractionAnnulee   = "ANNULEE"
)

// Violation holds the structure for the violation collection in mongo
type Violation struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details ViolationDetails   `json:"infraction" bson:"infraction"`
	Version int32              `json:"__v" bson:"__v"`
}

// ViolationDetails holds the inner violation structure, one row per traffic
// violation recorded against a vehicle
type ViolationDetails struct {
	VehiculeID     string      `json:"vehiculeID" bson:"vehiculeID"`
	ConducteurID   string      `json:"conducteurID" bson:"conducteurID"`
	Date           string      `json:"date" bson:"date"`
	TypeInfraction string      `json:"typeInfraction" bson:"typeInfraction"`
	Montant        float64     `json:"montant" bson:"montant"`
	Statut         string      `json:"statut" bson:"statut"`
	Lieu           string      `json:"lieu" bson:"lieu"`
	CreatedAt      interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt      interface{} `json:"updatedAt" bson:"updatedAt"`
}
