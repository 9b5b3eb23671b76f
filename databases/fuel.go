package databases

//go generate: mockery --name FuelDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const fuelName = "fuelrecords"

// FuelDatabase contains the methods to use with the fuel database
type FuelDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.FuelRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FuelRecord, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}) (CursorHelper, error)
}

type fuelDatabase struct {
	db DatabaseHelper
}

// NewFuelDatabase initializes a new instance of fuel database with the provided db connection
func NewFuelDatabase(db DatabaseHelper) FuelDatabase {
	return &fuelDatabase{
		db: db,
	}
}

func (f *fuelDatabase) FindOne(ctx context.Context, filter interface{}) (*models.FuelRecord, error) {
	doc := &models.FuelRecord{}
	err := f.db.Collection(fuelName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *fuelDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FuelRecord, error) {
	var docs []models.FuelRecord
	err := f.db.Collection(fuelName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (f *fuelDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return f.db.Collection(fuelName).InsertOne(ctx, document)
}

func (f *fuelDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return f.db.Collection(fuelName).UpdateOne(ctx, filter, update)
}

func (f *fuelDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return f.db.Collection(fuelName).DeleteOne(ctx, filter)
}

func (f *fuelDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return f.db.Collection(fuelName).CountDocuments(ctx, filter)
}

func (f *fuelDatabase) Aggregate(ctx context.Context, pipeline interface{}) (CursorHelper, error) {
	return f.db.Collection(fuelName).Aggregate(ctx, pipeline)
}
