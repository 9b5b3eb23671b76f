package databases

//go generate: mockery --name ViolationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const violationName = "violations"

// ViolationDatabase contains the methods to use with the violation database
type ViolationDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Violation, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Violation, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type violationDatabase struct {
	db DatabaseHelper
}

// NewViolationDatabase initializes a new instance of violation database with the provided db connection
func NewViolationDatabase(db DatabaseHelper) ViolationDatabase {
	return &violationDatabase{
		db: db,
	}
}

func (vi *violationDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Violation, error) {
	doc := &models.Violation{}
	err := vi.db.Collection(violationName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (vi *violationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Violation, error) {
	var docs []models.Violation
	err := vi.db.Collection(violationName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (vi *violationDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return vi.db.Collection(violationName).InsertOne(ctx, document)
}

func (vi *violationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return vi.db.Collection(violationName).UpdateOne(ctx, filter, update)
}

func (vi *violationDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return vi.db.Collection(violationName).DeleteOne(ctx, filter)
}

func (vi *violationDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return vi.db.Collection(violationName).CountDocuments(ctx, filter)
}
