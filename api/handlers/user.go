package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// UsersHandler returns all users
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := u.DB.Find(ctx, bson.M{}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des utilisateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.User{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// UserByIDHandler returns a user given a userID
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := u.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateUserHandler creates a user, admin only. Unlike self registration the
// admin chooses the role and initial status.
func (u User) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if failures := req.validate(); len(failures) > 0 {
		config.ErrorStatus(strings.Join(failures, ", "), http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := u.DB.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"user.email": req.Email},
		{"user.numeroEmploye": req.NumeroEmploye},
	}})
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("Un utilisateur avec cet email ou ce numéro d'employé existe déjà", http.StatusConflict, w, nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleConducteur
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email:         req.Email,
			Password:      string(hashed),
			Nom:           req.Nom,
			Prenom:        req.Prenom,
			Telephone:     req.Telephone,
			NumeroEmploye: req.NumeroEmploye,
			NumeroPermis:  req.NumeroPermis,
			DateEmbauche:  req.DateEmbauche,
			Role:          role,
			Statut:        models.StatutActif,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	if _, err := u.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("Erreur lors de la création de l'utilisateur", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	Nom          string      `json:"nom"`
	Prenom       string      `json:"prenom"`
	Telephone    string      `json:"telephone"`
	NumeroPermis string      `json:"numeroPermis"`
	Role         models.Role `json:"role"`
	Statut       string      `json:"statut"`
}

// UpdateUserHandler updates a user's details, role or status, admin only
func (u User) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		config.ErrorStatus("Le rôle est invalide", http.StatusBadRequest, w, nil)
		return
	}

	set := bson.M{"user.updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if req.Nom != "" {
		set["user.nom"] = req.Nom
	}
	if req.Prenom != "" {
		set["user.prenom"] = req.Prenom
	}
	if req.Telephone != "" {
		set["user.telephone"] = req.Telephone
	}
	if req.NumeroPermis != "" {
		set["user.numeroPermis"] = req.NumeroPermis
	}
	if req.Role != "" {
		set["user.role"] = req.Role
	}
	if req.Statut != "" {
		set["user.statut"] = req.Statut
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := u.DB.UpdateOne(ctx, bson.M{"_id": uID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour de l'utilisateur", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Utilisateur mis à jour")
}

// DeleteUserHandler deletes a user by ID, admin only
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := u.DB.DeleteOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression de l'utilisateur", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Utilisateur supprimé")
}
