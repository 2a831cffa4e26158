package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wedding-site-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TimelineRepository handles database operations for timeline events
type TimelineRepository struct {
	col *mongo.Collection
}

// NewTimelineRepository creates a new timeline repository
func NewTimelineRepository(db *mongo.Database) *TimelineRepository {
	return &TimelineRepository{col: db.Collection("timeline_events")}
}

// List retrieves all events sorted by display order
func (r *TimelineRepository) List(ctx context.Context) ([]models.TimelineEvent, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	defer cur.Close(ctx)

	events := []models.TimelineEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode timeline events: %w", err)
	}
	return events, nil
}

// Count returns the number of stored events
func (r *TimelineRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count timeline events: %w", err)
	}
	return n, nil
}

// Insert stores a single event
func (r *TimelineRepository) Insert(ctx context.Context, event models.TimelineEvent) (*models.TimelineEvent, error) {
	now := time.Now()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert timeline event: %w", err)
	}
	return &event, nil
}

// InsertMany inserts a batch of events in one call
func (r *TimelineRepository) InsertMany(ctx context.Context, events []models.TimelineEvent) ([]models.TimelineEvent, error) {
	docs := make([]interface{}, len(events))
	now := time.Now()
	for i := range events {
		if events[i].ID.IsZero() {
			events[i].ID = primitive.NewObjectID()
		}
		events[i].CreatedAt = now
		events[i].UpdatedAt = now
		docs[i] = events[i]
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert timeline events: %w", err)
	}
	return events, nil
}

// DeleteAll removes every event
func (r *TimelineRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete timeline events: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an event and clears its default
// flag, returning the new document.
func (r *TimelineRepository) Update(ctx context.Context, id primitive.ObjectID, fields models.TimelineEventFields) (*models.TimelineEvent, error) {
	set := bson.M{
		"date":        fields.Date,
		"title":       fields.Title,
		"description": fields.Description,
		"icon":        fields.Icon,
		"isDefault":   false,
		"updatedAt":   time.Now(),
	}

	var event models.TimelineEvent
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update timeline event: %w", err)
	}
	return &event, nil
}

// Delete removes a single event
func (r *TimelineRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete timeline event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MaxOrder returns the highest order value, or -1 when the collection is empty
func (r *TimelineRepository) MaxOrder(ctx context.Context) (int, error) {
	var event models.TimelineEvent
	err := r.col.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"order": -1})).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return -1, nil
		}
		return 0, fmt.Errorf("failed to find max order: %w", err)
	}
	return event.Order, nil
}

// SetOrders applies a batch of order assignments as a single ordered bulk
// write, so a torn partial update cannot be observed from this client.
func (r *TimelineRepository) SetOrders(ctx context.Context, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(updates))
	now := time.Now()
	for _, u := range updates {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order": u.Order, "updatedAt": now}}))
	}
	if _, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to update timeline order: %w", err)
	}
	return nil
}
