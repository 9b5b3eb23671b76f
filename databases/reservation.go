package databases

//go generate: mockery --name ReservationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionparc/fleet-api/models"
)

const reservationName = "reservations"

// ReservationDatabase contains the methods to use with the reservation database
type ReservationDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Reservation, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Reservation, error)
	InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type reservationDatabase struct {
	db DatabaseHelper
}

// NewReservationDatabase initializes a new instance of reservation database with the provided db connection
func NewReservationDatabase(db DatabaseHelper) ReservationDatabase {
	return &reservationDatabase{
		db: db,
	}
}

func (re *reservationDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Reservation, error) {
	doc := &models.Reservation{}
	err := re.db.Collection(reservationName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (re *reservationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Reservation, error) {
	var docs []models.Reservation
	err := re.db.Collection(reservationName).Find(ctx, filter, opts...).Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (re *reservationDatabase) InsertOne(ctx context.Context, document interface{}) (InsertOneResultHelper, error) {
	return re.db.Collection(reservationName).InsertOne(ctx, document)
}

func (re *reservationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return re.db.Collection(reservationName).UpdateOne(ctx, filter, update)
}

func (re *reservationDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return re.db.Collection(reservationName).DeleteOne(ctx, filter)
}

func (re *reservationDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return re.db.Collection(reservationName).CountDocuments(ctx, filter)
}
