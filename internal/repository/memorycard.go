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

const serialCounterID = "memory_cards"

// MemoryCardRepository handles database operations for memory cards
type MemoryCardRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

// NewMemoryCardRepository creates a new memory card repository
func NewMemoryCardRepository(db *mongo.Database) *MemoryCardRepository {
	return &MemoryCardRepository{
		col:      db.Collection("memory_cards"),
		counters: db.Collection("counters"),
	}
}

// List retrieves cards sorted newest first. A limit of 0 returns all cards.
func (r *MemoryCardRepository) List(ctx context.Context, limit int64) ([]models.MemoryCard, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory cards: %w", err)
	}
	defer cur.Close(ctx)

	cards := []models.MemoryCard{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode memory cards: %w", err)
	}
	return cards, nil
}

// Get retrieves a single card by id
func (r *MemoryCardRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.MemoryCard, error) {
	var card models.MemoryCard
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get memory card: %w", err)
	}
	return &card, nil
}

// Insert stores a new card
func (r *MemoryCardRepository) Insert(ctx context.Context, card models.MemoryCard) (*models.MemoryCard, error) {
	now := time.Now()
	if card.ID.IsZero() {
		card.ID = primitive.NewObjectID()
	}
	card.CreatedAt = now
	card.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to insert memory card: %w", err)
	}
	return &card, nil
}

// Delete removes a single card
func (r *MemoryCardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete memory card: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextSerial atomically increments and returns the card serial counter.
// Serials are monotonic and unique even under concurrent submissions;
// deletions leave gaps.
func (r *MemoryCardRepository) NextSerial(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": serialCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance serial counter: %w", err)
	}
	return counter.Seq, nil
}
