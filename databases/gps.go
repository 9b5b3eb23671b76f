package databases

//go generate: mockery --name GPSDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const gpsName = "gpsrecords"

// GPSDatabase contains the methods to use with the gps database
type GPSDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.GPSRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.GPSRecord, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}) (CursorHelper, error)
}

type gpsDatabase struct {
	db DatabaseHelper
}

// NewGPSDatabase initializes a new instance of gps database with the provided db connection
func NewGPSDatabase(db DatabaseHelper) GPSDatabase {
	return &gpsDatabase{
		db: db,
	}
}

func (g *gpsDatabase) FindOne(ctx context.Context, filter interface{}) (*models.GPSRecord, error) {
	doc := &models.GPSRecord{}
	err := g.db.Collection(gpsName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *gpsDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.GPSRecord, error) {
	var docs []models.GPSRecord
	err := g.db.Collection(gpsName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (g *gpsDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return g.db.Collection(gpsName).InsertOne(ctx, document)
}

func (g *gpsDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return g.db.Collection(gpsName).UpdateOne(ctx, filter, update)
}

func (g *gpsDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return g.db.Collection(gpsName).DeleteOne(ctx, filter)
}

func (g *gpsDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return g.db.Collection(gpsName).CountDocuments(ctx, filter)
}

func (g *gpsDatabase) Aggregate(ctx context.Context, pipeline interface{}) (CursorHelper, error) {
	return g.db.Collection(gpsName).Aggregate(ctx, pipeline)
}
