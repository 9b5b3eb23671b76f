package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reservation statuses
const (
	ReservationConfirmee = "CONFIRMEE"
	ReservationAnnulee   = "ANNULEE"
)

// Reservation holds the structure for the reservation collection in mongo,
// part of the TRAVEGAB passenger transport module
type Reservation struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details ReservationDetails `json:"reservation" bson:"reservation"`
	Version int32              `json:"__v" bson:"__v"`
}

// ReservationDetails holds the inner reservation structure, one row per
// passenger booking on a voyage
type ReservationDetails struct {
	VoyageID          string      `json:"voyageID" bson:"voyageID"`
	NomPassager       string      `json:"nomPassager" bson:"nomPassager"`
	TelephonePassager string      `json:"telephonePassager" bson:"telephonePassager"`
	NbPlaces          int         `json:"nbPlaces" bson:"nbPlaces"`
	MontantTotal      float64     `json:"montantTotal" bson:"montantTotal"`
	Statut            string      `json:"statut" bson:"statut"`
	CreatedAt         interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt         interface{} `json:"updatedAt" bson:"updatedAt"`
}
