package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vehicle statuses
const (
	VehiculeDisponible  = "DISPONIBLE"
	VehiculeEnMission   = "EN_MISSION"
	VehiculeEnEntretien = "EN_ENTRETIEN"
	VehiculeHorsService = "HORS_SERVICE"
)

// Vehicle holds the structure for the vehicle collection in mongo
type Vehicle struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details VehicleDetails     `json:"vehicule" bson:"vehicule"`
	Version int32              `json:"__v" bson:"__v"`
}

// VehicleDetails holds the structure for the inner vehicle structure as
// defined in the vehicle collection in mongo. Immatriculation is unique
// across the fleet.
type VehicleDetails struct {
	Marque          string      `json:"marque" bson:"marque"`
	Modele          string      `json:"modele" bson:"modele"`
	Immatriculation string      `json:"immatriculation" bson:"immatriculation"`
	Annee           int         `json:"annee" bson:"annee"`
	TypeVehicule    string      `json:"typeVehicule" bson:"typeVehicule"`
	TypeCarburant   string      `json:"typeCarburant" bson:"typeCarburant"`
	Kilometrage     int64       `json:"kilometrage" bson:"kilometrage"`
	Statut          string      `json:"statut" bson:"statut"`
	ResponsableID   string      `json:"responsableID" bson:"responsableID"`
	CreatedAt       interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt       interface{} `json:"updatedAt" bson:"updatedAt"`
}
