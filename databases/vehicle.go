package databases

//go generate: mockery --name VehicleDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const vehicleName = "vehicles"

// VehicleDatabase contains the methods to use with the vehicle database
type VehicleDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type vehicleDatabase struct {
	db DatabaseHelper
}

// NewVehicleDatabase initializes a new instance of vehicle database with the provided db connection
func NewVehicleDatabase(db DatabaseHelper) VehicleDatabase {
	return &vehicleDatabase{
		db: db,
	}
}

func (v *vehicleDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error) {
	doc := &models.Vehicle{}
	err := v.db.Collection(vehicleName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (v *vehicleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error) {
	var docs []models.Vehicle
	err := v.db.Collection(vehicleName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (v *vehicleDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return v.db.Collection(vehicleName).InsertOne(ctx, document)
}

func (v *vehicleDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return v.db.Collection(vehicleName).UpdateOne(ctx, filter, update)
}

func (v *vehicleDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return v.db.Collection(vehicleName).DeleteOne(ctx, filter)
}

func (v *vehicleDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return v.db.Collection(vehicleName).CountDocuments(ctx, filter)
}
