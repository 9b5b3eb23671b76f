package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gestionparc/fleet-api/api"
	"github.com/gestionparc/fleet-api/config"
	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
)

// Report exported for testing purposes
type Report struct {
	VDB   databases.VehicleDatabase
	FDB   databases.FuelDatabase
	VioDB databases.ViolationDatabase
	DDB   databases.DocumentDatabase
	MDB   databases.MaintenanceDatabase
}

type vehicleCounts struct {
	Total       int64 `json:"total"`
	Disponibles int64 `json:"disponibles"`
	EnMission   int64 `json:"enMission"`
	EnEntretien int64 `json:"enEntretien"`
	HorsService int64 `json:"horsService"`
}

type dashboard struct {
	Vehicules            vehicleCounts `json:"vehicules"`
	InfractionsEnAttente int64         `json:"infractionsEnAttente"`
	CarburantMoisCourant float64       `json:"carburantMoisCourant"`
	DocumentsAExpirer    int64         `json:"documentsAExpirer"`
	EntretiensAVenir     int64         `json:"entretiensAVenir"`
}

type fuelTotal struct {
	Total float64 `bson:"total"`
}

// DashboardHandler aggregates the fleet-wide indicators shown on the
// dashboard: vehicle availability, pending fines, the current month's fuel
// spend, documents expiring within 30 days and upcoming maintenance.
func (rep Report) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var dash dashboard
	var err error

	dash.Vehicules.Total, err = rep.VDB.CountDocuments(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}
	statuses := []struct {
		statut string
		dest   *int64
	}{
		{models.VehiculeDisponible, &dash.Vehicules.Disponibles},
		{models.VehiculeEnMission, &dash.Vehicules.EnMission},
		{models.VehiculeEnEntretien, &dash.Vehicules.EnEntretien},
		{models.VehiculeHorsService, &dash.Vehicules.HorsService},
	}
	for _, s := range statuses {
		*s.dest, err = rep.VDB.CountDocuments(ctx, bson.M{"vehicule.statut": s.statut})
		if err != nil {
			config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
			return
		}
	}

	dash.InfractionsEnAttente, err = rep.VioDB.CountDocuments(ctx, bson.M{"infraction.statut": models.InfractionEnAttente})
	if err != nil {
		config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}

	dash.CarburantMoisCourant, err = rep.currentMonthFuelSpend(ctx)
	if err != nil {
		config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}

	horizon := time.Now().UTC().AddDate(0, 0, 30).Format(time.RFC3339)
	dash.DocumentsAExpirer, err = rep.DDB.CountDocuments(ctx, bson.M{
		"document.statut":         bson.M{"$ne": models.DocumentExpire},
		"document.dateExpiration": bson.M{"$lte": horizon},
	})
	if err != nil {
		config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}

	dash.EntretiensAVenir, err = rep.MDB.CountDocuments(ctx, bson.M{
		"entretien.statut": bson.M{"$in": []string{models.EntretienPlanifie, models.EntretienEnCours}},
	})
	if err != nil {
		config.ErrorStatus("Erreur lors du calcul des indicateurs", config.StatusFromDatabaseError(err), w, err)
		return
	}

	config.RespondJSON(w, http.StatusOK, dash)
}

// currentMonthFuelSpend sums the montant of every refueling dated within the
// current calendar month (UTC).
func (rep Report) currentMonthFuelSpend(ctx context.Context) (float64, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	monthEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Format(time.RFC3339)

	pipeline := []bson.M{
		{"$match": bson.M{"carburant.date": bson.M{"$gte": monthStart, "$lt": monthEnd}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$carburant.montant"}}},
	}
	cursor, err := rep.FDB.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var totals []fuelTotal
	if err := cursor.Decode(&totals); err != nil {
		return 0, err
	}
	if len(totals) == 0 {
		return 0, nil
	}
	return totals[0].Total, nil
}
