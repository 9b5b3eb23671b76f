package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// FuelRecord holds the structure for the fuel collection in mongo
type FuelRecord struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details FuelRecordDetails  `json:"carburant" bson:"carburant"`
	Version int32              `json:"__v" bson:"__v"`
}

// FuelRecordDetails holds the inner fuel record structure, one row per
// refueling of a vehicle
type FuelRecordDetails struct {
	VehiculeID   string      `json:"vehiculeID" bson:"vehiculeID"`
	ConducteurID string      `json:"conducteurID" bson:"conducteurID"`
	Date         string      `json:"date" bson:"date"`
	Quantite     float64     `json:"quantite" bson:"quantite"`
	Montant      float64     `json:"montant" bson:"montant"`
	Kilometrage  int64       `json:"kilometrage" bson:"kilometrage"`
	Station      string      `json:"station" bson:"station"`
	CreatedAt    interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt    interface{} `json:"updatedAt" bson:"updatedAt"`
}
