package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Violation exported for testing purposes
type Violation struct {
	DB     databases.ViolationDatabase
	Config config.Config
}

// ViolationsHandler returns all violations
func (v Violation) ViolationsHandler(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if statut := r.URL.Query().Get("statut"); statut != "" {
		filter["infraction.statut"] = statut
	}

	dbResp, err := v.DB.Find(ctx, filter, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des infractions", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Violation{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// ViolationByIDHandler returns a violation by ID
func (v Violation) ViolationByIDHandler(w http.ResponseWriter, r *http.Request) {
	violationID := mux.Vars(r)["violation_id"]

	vID, err := primitive.ObjectIDFromHex(violationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := v.DB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Infraction non trouvée", http.StatusNotFound, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dbResp)
}

// ViolationsByVehicleIDHandler returns all violations for the given vehicle
func (v Violation) ViolationsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	limit, skip := pagination(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := v.DB.Find(ctx, bson.M{"infraction.vehiculeID": vehicleID}, findOptions(limit, skip))
	if err != nil {
		config.ErrorStatus("Erreur lors de la récupération des infractions", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Violation{}
	}
	config.RespondJSON(w, http.StatusOK, dbResp)
}

// CreateViolationHandler records a traffic violation against a vehicle
func (v Violation) CreateViolationHandler(w http.ResponseWriter, r *http.Request) {
	var details models.ViolationDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	if details.VehiculeID == "" || details.TypeInfraction == "" || details.Montant < 0 {
		config.ErrorStatus("Le véhicule, le type d'infraction et le montant sont requis", http.StatusBadRequest, w, nil)
		return
	}

	if details.Statut == "" {
		details.Statut = models.InfractionEnAttente
	}
	if details.Date == "" {
		details.Date = timestamp()
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	violation := models.Violation{ID: primitive.NewObjectID(), Details: details}
	if _, err := v.DB.InsertOne(ctx, violation); err != nil {
		config.ErrorStatus("Erreur lors de la création de l'infraction", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusCreated, violation)
}

// UpdateViolationHandler updates a violation's details or status
func (v Violation) UpdateViolationHandler(w http.ResponseWriter, r *http.Request) {
	violationID := mux.Vars(r)["violation_id"]

	vID, err := primitive.ObjectIDFromHex(violationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	var details models.ViolationDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("Requête invalide", http.StatusBadRequest, w, err)
		return
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := v.DB.UpdateOne(ctx, bson.M{"_id": vID}, bson.M{"$set": bson.M{"infraction": details}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour de l'infraction", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Infraction non trouvée", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Infraction mise à jour")
}

// DeleteViolationHandler deletes a violation by ID
func (v Violation) DeleteViolationHandler(w http.ResponseWriter, r *http.Request) {
	violationID := mux.Vars(r)["violation_id"]

	vID, err := primitive.ObjectIDFromHex(violationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := v.DB.DeleteOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Erreur lors de la suppression de l'infraction", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Infraction non trouvée", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Infraction supprimée")
}

// PayViolationHandler creates a Stripe Checkout session for the fine and
// returns its URL. Only a pending violation can be paid.
func (v Violation) PayViolationHandler(w http.ResponseWriter, r *http.Request) {
	violationID := mux.Vars(r)["violation_id"]

	vID, err := primitive.ObjectIDFromHex(violationID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	violation, err := v.DB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("Infraction non trouvée", http.StatusNotFound, w, err)
		return
	}
	if violation.Details.Statut != models.InfractionEnAttente {
		config.ErrorStatus("Cette infraction n'est pas en attente de paiement", http.StatusConflict, w, nil)
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("eur"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Amende - %s", violation.Details.TypeInfraction)),
					},
					UnitAmount: stripe.Int64(int64(violation.Details.Montant * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(v.Config.BaseURL + "/violations/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(v.Config.BaseURL + "/violations/cancel"),
		ClientReferenceID: stripe.String(violation.ID.Hex()),
	}

	s, err := session.New(params)
	if err != nil {
		config.ErrorStatus("Erreur lors de la création de la session de paiement", http.StatusInternalServerError, w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, map[string]string{
		"sessionId": s.ID,
		"url":       s.URL,
	})
}

// ConfirmPaymentHandler retrieves the Checkout session the client was
// redirected back with and marks the referenced violation PAYEE once Stripe
// reports the session paid.
func (v Violation) ConfirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		config.ErrorStatus("La session de paiement est requise", http.StatusBadRequest, w, nil)
		return
	}

	s, err := session.Get(sessionID, nil)
	if err != nil {
		config.ErrorStatus("Session de paiement introuvable", http.StatusNotFound, w, err)
		return
	}
	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		config.ErrorStatus("Le paiement n'a pas été confirmé", http.StatusConflict, w, nil)
		return
	}

	vID, err := primitive.ObjectIDFromHex(s.ClientReferenceID)
	if err != nil {
		config.ErrorStatus("Identifiant invalide", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := v.DB.UpdateOne(ctx, bson.M{"_id": vID}, bson.M{"$set": bson.M{
		"infraction.statut":    models.InfractionPayee,
		"infraction.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("Erreur lors de la mise à jour de l'infraction", config.StatusFromDatabaseError(err), w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Infraction non trouvée", http.StatusNotFound, w, nil)
		return
	}

	config.RespondMessage(w, http.StatusOK, "Paiement confirmé, infraction payée")
}
