package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
	templates "github.com/gestionparc/fleet-api/templates/html"
)

// bcryptCost is the hashing cost factor for stored passwords
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Auth handles registration, login and profile management
type Auth struct {
	DB     databases.UserDatabase
	Config config.Config
}

type registerRequest struct {
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	Nom           string      `json:"nom"`
	Prenom        string      `json:"prenom"`
	Telephone     string      `json:"telephone"`
	NumeroEmploye string      `json:"numeroEmploye"`
	NumeroPermis  string      `json:"numeroPermis"`
	DateEmbauche  string      `json:"dateEmbauche"`
	Role          models.Role `json:"role"`
}

// validate collects every failing rule so the caller sees all of them at once
func (req registerRequest) validate() []string {
	var failures []string
	if !emailPattern.MatchString(req.Email) {
		failures = append(failures, "L'email est invalide")
	}
	if len(req.Password) < 6 {
		failures = append(failures, "Le mot de passe doit contenir au moins 6 caractères")
	}
	if strings.TrimSpace(req.Nom) == "" {
		failures = append(failures, "Le nom est requis")
	}
	if strings.TrimSpace(req.Prenom) == "" {
		failures = append(failures, "Le prénom est requis")
	}
	if strings.TrimSpace(req.NumeroEmploye) == "" {
		failures = append(failures, "Le numéro d'employé est requis")
	}
	if req.Role != "" && !req.Role.Valid() {
		failures = append(failures, "Le rôle est invalide")
	}
	return failures
}

// RegisterHandler creates a user account and returns a bearer token
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
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

	count, err := a.DB.CountDocuments(ctx, bson.M{"user.email": req.Email})
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("Un utilisateur avec cet email existe déjà", http.StatusConflict, w, nil)
		return
	}

	count, err = a.DB.CountDocuments(ctx, bson.M{"user.numeroEmploye": req.NumeroEmploye})
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("Ce numéro d'employé est déjà utilisé", http.StatusConflict, w, nil)
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

	if _, err := a.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("Erreur lors de la création de l'utilisateur", config.StatusFromDatabaseError(err), w, err)
		return
	}

	token, err := api.SignToken(&user, []byte(a.Config.JWTSecret), api.TokenTTL)
	if err != nil {
		config.ErrorStatus("Erreur lors de la génération du token", http.StatusInternalServerError, w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user by email and password and returns a
// bearer token. Every failure yields the same message so callers cannot
// enumerate accounts.
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"user.email": req.Email, "user.statut": models.StatutActif})
	if err != nil {
		config.ErrorStatus("Email ou mot de passe incorrect", http.StatusUnauthorized, w, nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("Email ou mot de passe incorrect", http.StatusUnauthorized, w, nil)
		return
	}

	token, err := api.SignToken(user, []byte(a.Config.JWTSecret), api.TokenTTL)
	if err != nil {
		config.ErrorStatus("Erreur lors de la génération du token", http.StatusInternalServerError, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the full profile of the authenticated caller
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	identity := api.IdentityFromContext(r.Context())

	uID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, user)
}

type profileRequest struct {
	Nom          string `json:"nom"`
	Prenom       string `json:"prenom"`
	Telephone    string `json:"telephone"`
	NumeroPermis string `json:"numeroPermis"`
}

// UpdateProfileHandler updates the editable profile fields of the caller
func (a Auth) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	identity := api.IdentityFromContext(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	uID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
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

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := a.DB.UpdateOne(ctx, bson.M{"_id": uID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du profil", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Profil mis à jour")
}

type passwordRequest struct {
	AncienMotDePasse  string `json:"ancienMotDePasse"`
	NouveauMotDePasse string `json:"nouveauMotDePasse"`
}

// UpdatePasswordHandler changes the caller password after verifying the old one
func (a Auth) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	identity := api.IdentityFromContext(r.Context())

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}
	if len(req.NouveauMotDePasse) < 6 {
		config.ErrorStatus("Le mot de passe doit contenir au moins 6 caractères", http.StatusBadRequest, w, nil)
		return
	}

	uID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("Utilisateur non trouvé", http.StatusNotFound, w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(req.AncienMotDePasse)); err != nil {
		config.ErrorStatus("Ancien mot de passe incorrect", http.StatusUnauthorized, w, nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NouveauMotDePasse), bcryptCost)
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}

	_, err = a.DB.UpdateOne(ctx, bson.M{"_id": uID}, bson.M{"$set": bson.M{
		"user.password":  string(hashed),
		"user.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du mot de passe", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Mot de passe mis à jour")
}

type forgotRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordHandler sends a password reset email when the account
// exists; the response is identical either way
func (a Auth) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"user.email": req.Email, "user.statut": models.StatutActif})
	if err == nil {
		plain, hashHex, genErr := generateResetToken()
		if genErr == nil {
			_, _ = a.DB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
				"user.resetToken":   hashHex,
				"user.resetExpires": primitive.NewDateTimeFromTime(time.Now().Add(1 * time.Hour)),
			}})
			if mailErr := sendResetEmail(req.Email, buildResetLink(a.Config.BaseURL, plain)); mailErr != nil {
				zap.S().With(mailErr).Warn("failed to send reset email")
			}
		}
	}

	config.RespondMessage(w, http.StatusOK, "Si cet email existe, un lien de réinitialisation a été envoyé")
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPasswordHandler sets a new password from a valid reset token
func (a Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}
	if req.Token == "" || len(req.Password) < 6 {
		config.ErrorStatus("Token et mot de passe (6 caractères minimum) requis", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{
		"user.resetToken":   hashResetToken(req.Token),
		"user.resetExpires": bson.M{"$gt": primitive.NewDateTimeFromTime(time.Now())},
	})
	if err != nil {
		config.ErrorStatus("Token invalide ou expiré", http.StatusBadRequest, w, nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		config.ErrorStatus("Erreur interne", http.StatusInternalServerError, w, err)
		return
	}

	_, err = a.DB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"user.password":  string(hashed),
			"user.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		},
		"$unset": bson.M{
			"user.resetToken":   "",
			"user.resetExpires": "",
		},
	})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour du mot de passe", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Mot de passe réinitialisé")
}

// helpers

func generateResetToken() (plain string, hashHex string, err error) {
	b := make([]byte, 32)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	pln := hex.EncodeToString(b)
	return pln, hashResetToken(pln), nil
}

func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func buildResetLink(baseURL, token string) string {
	base := strings.TrimRight(baseURL, "/")
	return fmt.Sprintf("%s/reset-password?token=%s", base, token)
}

func sendResetEmail(toEmail, resetLink string) error {
	from := mail.NewEmail("Gestion Parc Auto", "no-reply@gestionparc.app")
	subject := "Réinitialisation de votre mot de passe"
	to := mail.NewEmail("", toEmail)
	plain := "Réinitialisez votre mot de passe en suivant ce lien : " + resetLink
	html := templates.RenderPasswordReset(resetLink)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(msg)
	return err
}
