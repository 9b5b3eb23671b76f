package databases

//go generate: mockery --name MaintenanceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const maintenanceName = "maintenancerecords"

// MaintenanceDatabase contains the methods to use with the maintenance database
type MaintenanceDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceRecord, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type maintenanceDatabase struct {
	db DatabaseHelper
}

// NewMaintenanceDatabase initializes a new instance of maintenance database with the provided db connection
func NewMaintenanceDatabase(db DatabaseHelper) MaintenanceDatabase {
	return &maintenanceDatabase{
		db: db,
	}
}

func (m *maintenanceDatabase) FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceRecord, error) {
	doc := &models.MaintenanceRecord{}
	err := m.db.Collection(maintenanceName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *maintenanceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceRecord, error) {
	var docs []models.MaintenanceRecord
	err := m.db.Collection(maintenanceName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *maintenanceDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return m.db.Collection(maintenanceName).InsertOne(ctx, document)
}

func (m *maintenanceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return m.db.Collection(maintenanceName).UpdateOne(ctx, filter, update)
}

func (m *maintenanceDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return m.db.Collection(maintenanceName).DeleteOne(ctx, filter)
}

func (m *maintenanceDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return m.db.Collection(maintenanceName).CountDocuments(ctx, filter)
}
