package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/databases"
	"github.com/gestionparc/fleet-api/models"
	templates "github.com/gestionparc/fleet-api/templates/html"
)

// Scheduler handles periodic background jobs for document expiry and
// maintenance follow-up
type Scheduler struct {
	cron *cron.Cron
	DDB  databases.DocumentDatabase
	MDB  databases.MaintenanceDatabase
}

// New creates a new scheduler instance
func New(dDB databases.DocumentDatabase, mDB databases.MaintenanceDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		DDB:  dDB,
		MDB:  mDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Sweep document expiry dates daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.sweepDocuments)
	if err != nil {
		zap.S().Errorw("failed to register document expiry job", "error", err)
	}

	// Flag overdue planned maintenance daily at 4 AM UTC
	_, err = s.cron.AddFunc("0 4 * * *", s.sweepMaintenance)
	if err != nil {
		zap.S().Errorw("failed to register maintenance job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("fleet scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("fleet scheduler stopped")
}

// sweepDocuments marks documents past their expiration date EXPIRE, flags
// documents expiring within 30 days A_RENOUVELER, and emails the fleet
// manager the list of documents needing renewal.
func (s *Scheduler) sweepDocuments() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	horizon := time.Now().UTC().AddDate(0, 0, 30).Format(time.RFC3339)

	zap.S().Info("running document expiry sweep")

	expired, err := s.DDB.UpdateMany(ctx, bson.M{
		"document.statut":         bson.M{"$ne": models.DocumentExpire},
		"document.dateExpiration": bson.M{"$ne": "", "$lte": now},
	}, bson.M{"$set": bson.M{
		"document.statut":    models.DocumentExpire,
		"document.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		zap.S().Errorw("failed to mark expired documents", "error", err)
		return
	}

	flagged, err := s.DDB.UpdateMany(ctx, bson.M{
		"document.statut":         models.DocumentValide,
		"document.dateExpiration": bson.M{"$gt": now, "$lte": horizon},
	}, bson.M{"$set": bson.M{
		"document.statut":    models.DocumentARenouveler,
		"document.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		zap.S().Errorw("failed to flag documents for renewal", "error", err)
		return
	}

	if flagged > 0 || expired > 0 {
		s.notifyExpiringDocuments(ctx)
	}

	zap.S().Infow("document expiry sweep complete",
		"expired", expired,
		"flaggedForRenewal", flagged,
	)
}

// sweepMaintenance turns arrived follow-up dates into new planned records
// and warns on planned maintenance whose date has passed without being
// started
func (s *Scheduler) sweepMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)

	zap.S().Info("running maintenance sweep")

	due, err := s.MDB.Find(ctx, bson.M{
		"entretien.statut":            models.EntretienTermine,
		"entretien.prochainEntretien": bson.M{"$ne": "", "$lte": now},
	})
	if err != nil {
		zap.S().Errorw("failed to find due follow-up maintenance", "error", err)
		return
	}

	planned := 0
	for _, record := range due {
		count, err := s.MDB.CountDocuments(ctx, bson.M{
			"entretien.vehiculeID":    record.Details.VehiculeID,
			"entretien.typeEntretien": record.Details.TypeEntretien,
			"entretien.statut":        models.EntretienPlanifie,
		})
		if err != nil {
			zap.S().Errorw("failed to check for existing planned maintenance", "error", err)
			continue
		}
		if count > 0 {
			continue
		}

		followUp := models.MaintenanceRecord{
			ID: primitive.NewObjectID(),
			Details: models.MaintenanceRecordDetails{
				VehiculeID:    record.Details.VehiculeID,
				TypeEntretien: record.Details.TypeEntretien,
				Date:          record.Details.ProchainEntretien,
				Statut:        models.EntretienPlanifie,
				Garage:        record.Details.Garage,
				Description:   "Entretien de suivi programmé automatiquement",
				CreatedAt:     primitive.NewDateTimeFromTime(time.Now()),
				UpdatedAt:     primitive.NewDateTimeFromTime(time.Now()),
			},
		}
		if _, err := s.MDB.InsertOne(ctx, followUp); err != nil {
			zap.S().Errorw("failed to plan follow-up maintenance", "error", err,
				"vehiculeID", record.Details.VehiculeID,
			)
			continue
		}
		planned++

		if _, err := s.MDB.UpdateOne(ctx, bson.M{"_id": record.ID}, bson.M{"$set": bson.M{
			"entretien.prochainEntretien": "",
			"entretien.updatedAt":         primitive.NewDateTimeFromTime(time.Now()),
		}}); err != nil {
			zap.S().Errorw("failed to clear follow-up date", "error", err, "maintenanceId", record.ID.Hex())
		}
	}

	overdue, err := s.MDB.Find(ctx, bson.M{
		"entretien.statut": models.EntretienPlanifie,
		"entretien.date":   bson.M{"$ne": "", "$lte": now},
	})
	if err != nil {
		zap.S().Errorw("failed to find overdue maintenance", "error", err)
		return
	}

	for _, record := range overdue {
		zap.S().Warnw("planned maintenance is overdue",
			"maintenanceId", record.ID.Hex(),
			"vehiculeID", record.Details.VehiculeID,
			"date", record.Details.Date,
		)
	}

	zap.S().Infow("maintenance sweep complete", "planned", planned, "overdue", len(overdue))
}

// notifyExpiringDocuments emails the fleet manager the documents flagged for
// renewal. The recipient comes from FLEET_MANAGER_EMAIL; the job is a no-op
// when it is unset.
func (s *Scheduler) notifyExpiringDocuments(ctx context.Context) {
	recipient := os.Getenv("FLEET_MANAGER_EMAIL")
	if recipient == "" {
		return
	}

	documents, err := s.DDB.Find(ctx, bson.M{"document.statut": models.DocumentARenouveler})
	if err != nil {
		zap.S().Errorw("failed to list documents for renewal notice", "error", err)
		return
	}
	if len(documents) == 0 {
		return
	}

	expiring := make([]templates.ExpiringDocument, 0, len(documents))
	for _, d := range documents {
		expiring = append(expiring, templates.ExpiringDocument{
			Nom:            d.Details.Nom,
			TypeDocument:   d.Details.TypeDocument,
			VehiculeID:     d.Details.VehiculeID,
			DateExpiration: d.Details.DateExpiration,
		})
	}

	from := mail.NewEmail("Gestion Parc Auto", "no-reply@gestionparc.app")
	to := mail.NewEmail("", recipient)
	subject := "Documents à renouveler - Gestion Parc Auto"
	plainText := "Des documents de votre parc expirent dans les 30 prochains jours. Consultez le tableau de bord pour les renouveler."
	message := mail.NewSingleEmail(from, subject, to, plainText, templates.RenderDocumentExpiry(expiring))

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send document expiry email", "error", err)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return
	}

	zap.S().Infow("sent document expiry notice", "documents", len(expiring))
}
