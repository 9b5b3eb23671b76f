package databases

//go generate: mockery --name VoyageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const voyageName = "voyages"

// VoyageDatabase contains the methods to use with the voyage database
type VoyageDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Voyage, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Voyage, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type voyageDatabase struct {
	db DatabaseHelper
}

// NewVoyageDatabase initializes a new instance of voyage database with the provided db connection
func NewVoyageDatabase(db DatabaseHelper) VoyageDatabase {
	return &voyageDatabase{
		db: db,
	}
}

func (vo *voyageDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Voyage, error) {
	doc := &models.Voyage{}
	err := vo.db.Collection(voyageName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (vo *voyageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Voyage, error) {
	var docs []models.Voyage
	err := vo.db.Collection(voyageName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (vo *voyageDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return vo.db.Collection(voyageName).InsertOne(ctx, document)
}

func (vo *voyageDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return vo.db.Collection(voyageName).UpdateOne(ctx, filter, update)
}

func (vo *voyageDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return vo.db.Collection(voyageName).DeleteOne(ctx, filter)
}

func (vo *voyageDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return vo.db.Collection(voyageName).CountDocuments(ctx, filter)
}
