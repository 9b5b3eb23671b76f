package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GPSRecord holds the structure for the gps collection in mongo
type GPSRecord struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details GPSRecordDetails   `json:"position" bson:"position"`
	Version int32              `json:"__v" bson:"__v"`
}

// GPSRecordDetails holds the inner gps position structure
type GPSRecordDetails struct {
	VehiculeID string      `json:"vehiculeID" bson:"vehiculeID"`
	Latitude   float64     `json:"latitude" bson:"latitude"`
	Longitude  float64     `json:"longitude" bson:"longitude"`
	Vitesse    float64     `json:"vitesse" bson:"vitesse"`
	Horodatage string      `json:"horodatage" bson:"horodatage"`
	CreatedAt  interface{} `json:"createdAt" bson:"createdAt"`
}
