package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the canonical role enumeration controlling which route handlers a
// user may invoke
type Role string

// Roles, uppercase by convention across the whole API
const (
	RoleAdmin        Role = "ADMIN"
	RoleGestionnaire Role = "GESTIONNAIRE"
	RoleConducteur   Role = "CONDUCTEUR"
	RoleMecanicien   Role = "MECANICIEN"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestionnaire, RoleConducteur, RoleMecanicien:
		return true
	}
	return false
}

// User statuses
const (
	StatutActif    = "ACTIF"
	StatutInactif  = "INACTIF"
	StatutSuspendu = "SUSPENDU"
)

// User holds the structure for the user collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in
// the user collection in mongo. The password hash is never serialized to
// clients.
type UserDetails struct {
	Email         string      `json:"email" bson:"email"`
	Password      string      `json:"-" bson:"password"`
	Nom           string      `json:"nom" bson:"nom"`
	Prenom        string      `json:"prenom" bson:"prenom"`
	Telephone     string      `json:"telephone" bson:"telephone"`
	NumeroEmploye string      `json:"numeroEmploye" bson:"numeroEmploye"`
	NumeroPermis  string      `json:"numeroPermis" bson:"numeroPermis"`
	Role          Role        `json:"role" bson:"role"`
	Statut        string      `json:"statut" bson:"statut"`
	DateEmbauche  string      `json:"dateEmbauche" bson:"dateEmbauche"`
	ResetToken    string      `json:"-" bson:"resetToken,omitempty"`
	ResetExpires  interface{} `json:"-" bson:"resetExpires,omitempty"`
	CreatedAt     interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt     interface{} `json:"updatedAt" bson:"updatedAt"`
}

// Identity is the reduced authenticated view attached to the request context
// by the auth middleware. It never carries the password hash.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}
