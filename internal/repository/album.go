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

// AlbumRepository handles database operations for albums
type AlbumRepository struct {
	col *mongo.Collection
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(db *mongo.Database) *AlbumRepository {
	return &AlbumRepository{col: db.Collection("albums")}
}

// List retrieves all albums sorted by display order
func (r *AlbumRepository) List(ctx context.Context) ([]models.Album, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer cur.Close(ctx)

	albums := []models.Album{}
	if err := cur.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("failed to decode albums: %w", err)
	}
	return albums, nil
}

// Count returns the number of stored albums
func (r *AlbumRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return n, nil
}

// InsertMany inserts a batch of albums in one call
func (r *AlbumRepository) InsertMany(ctx context.Context, albums []models.Album) ([]models.Album, error) {
	docs := make([]interface{}, len(albums))
	now := time.Now()
	for i := range albums {
		if albums[i].ID.IsZero() {
			albums[i].ID = primitive.NewObjectID()
		}
		albums[i].CreatedAt = now
		albums[i].UpdatedAt = now
		docs[i] = albums[i]
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert albums: %w", err)
	}
	return albums, nil
}

// DeleteAll removes every album
func (r *AlbumRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete albums: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an album and returns the new document.
// An empty CoverImage keeps the existing cover.
func (r *AlbumRepository) Update(ctx context.Context, id primitive.ObjectID, fields models.AlbumFields) (*models.Album, error) {
	set := bson.M{
		"title":            fields.Title,
		"description":      fields.Description,
		"googlePhotosLink": fields.GooglePhotosLink,
		"updatedAt":        time.Now(),
	}
	if fields.CoverImage != "" {
		set["coverImage"] = fields.CoverImage
	}

	var album models.Album
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&album)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return &album, nil
}
