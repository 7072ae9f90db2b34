package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

const collectionAppointments = "appointments"

// AppointmentRepository persists appointments in MongoDB. Start/end
// instants are stored as UTC; ids are int64 values from the counters
// sequence so the API contract stays numeric.
type AppointmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{db: db, col: db.Collection(collectionAppointments)}
}

// Insert assigns the next sequence id and stores the appointment.
func (r *AppointmentRepository) Insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionAppointments)
	if err != nil {
		return nil, err
	}

	stored := *appt
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update replaces the document matching (appt.ID, appt.UserID); the owner
// filter means a wrong or foreign id falls through to ErrAppointmentNotFound.
func (r *AppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": appt.ID, "user_id": appt.UserID}
	res, err := r.col.ReplaceOne(ctx, filter, appt)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	return appt, nil
}

// Delete removes the document matching (id, userID).
func (r *AppointmentRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListByUser returns all appointments owned by userID, ordered by start.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	appts := []*domain.Appointment{}
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// HasOverlap reports whether any appointment owned by userID, other than
// excludeID, intersects the half-open range [start, end). The predicate
// start < existing.end && end > existing.start is evaluated by the store.
func (r *AppointmentRepository) HasOverlap(ctx context.Context, userID int64, start, end time.Time, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"start":   bson.M{"$lt": end},
		"end":     bson.M{"$gt": start},
	}
	if excludeID != 0 {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	err := r.col.FindOne(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteByUser removes every appointment owned by userID.
func (r *AppointmentRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes the overlap and list queries rely on.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
