package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Maintenance statuses
const (
	EntretienPlanifie = "PLANIFIE"
	EntretienEnCours  = "EN_COURS"
	EntretienTermine  = "TERMINE"
	EntretienAnnule   = "ANNULE"
)

// MaintenanceRecord holds the structure for the maintenance collection in mongo
type MaintenanceRecord struct {
	ID      primitive.ObjectID       `json:"_id" bson:"_id"`
	Details MaintenanceRecordDetails `json:"entretien" bson:"entretien"`
	Version int32                    `json:"__v" bson:"__v"`
}

// MaintenanceRecordDetails holds the inner maintenance record structure
type MaintenanceRecordDetails struct {
	VehiculeID        string      `json:"vehiculeID" bson:"vehiculeID"`
	TypeEntretien     string      `json:"typeEntretien" bson:"typeEntretien"`
	Date              string      `json:"date" bson:"date"`
	Cout              float64     `json:"cout" bson:"cout"`
	Statut            string      `json:"statut" bson:"statut"`
	Garage            string      `json:"garage" bson:"garage"`
	Description       string      `json:"description" bson:"description"`
	ProchainEntretien string      `json:"prochainEntretien" bson:"prochainEntretien"`
	CreatedAt         interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt         interface{} `json:"updatedAt" bson:"updatedAt"`
}
