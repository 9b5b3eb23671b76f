package databases

//go generate: mockery --name DocumentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const documentName = "documents"

// DocumentDatabase contains the methods to use with the document database
type DocumentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Document, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type documentDatabase struct {
	db DatabaseHelper
}

// NewDocumentDatabase initializes a new instance of document database with the provided db connection
func NewDocumentDatabase(db DatabaseHelper) DocumentDatabase {
	return &documentDatabase{
		db: db,
	}
}

func (d *documentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Document, error) {
	doc := &models.Document{}
	err := d.db.Collection(documentName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *documentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.Collection(documentName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *documentDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return d.db.Collection(documentName).InsertOne(ctx, document)
}

func (d *documentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return d.db.Collection(documentName).UpdateOne(ctx, filter, update)
}

func (d *documentDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return d.db.Collection(documentName).UpdateMany(ctx, filter, update)
}

func (d *documentDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return d.db.Collection(documentName).DeleteOne(ctx, filter)
}

func (d *documentDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return d.db.Collection(documentName).CountDocuments(ctx, filter)
}
