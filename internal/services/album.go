package services

import (
	"context"
	"fmt"

	"wedding-site-backend/internal/imaging"
	"wedding-site-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlbumStore is the persistence surface the album service needs
type AlbumStore interface {
	List(ctx context.Context) ([]models.Album, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, albums []models.Album) ([]models.Album, error)
	DeleteAll(ctx context.Context) error
	Update(ctx context.Context, id primitive.ObjectID, fields models.AlbumFields) (*models.Album, error)
}

// AlbumService handles album business logic
type AlbumService struct {
	store AlbumStore
}

// NewAlbumService creates a new album service
func NewAlbumService(store AlbumStore) *AlbumService {
	return &AlbumService{store: store}
}

// DefaultAlbums returns the seed set shipped with a fresh install
func DefaultAlbums() []models.Album {
	return []models.Album{
		{
			Title:            "Engagement Ceremony",
			Description:      "The beautiful beginning of our journey",
			CoverImage:       "/images/wedding-couple1.png",
			GooglePhotosLink: "https://photos.google.com/your-engagement-album",
			Order:            0,
			IsDefault:        true,
		},
		{
			Title:            "Pre-Wedding Shoot",
			Description:      "Captured moments of love and laughter",
			CoverImage:       "/images/wedding-couple2.png",
			GooglePhotosLink: "https://photos.google.com/your-prewedding-album",
			Order:            1,
			IsDefault:        true,
		},
		{
			Title:            "Haldi & Mehendi",
			Description:      "Colors of tradition and celebration",
			CoverImage:       "/images/wedding-couple3.png",
			GooglePhotosLink: "https://photos.google.com/your-haldi-album",
			Order:            2,
			IsDefault:        true,
		},
		{
			Title:            "Wedding Reception",
			Description:      "An evening of love and blessings",
			CoverImage:       "/images/wedding-couple4.png",
			GooglePhotosLink: "https://photos.google.com/your-reception-album",
			Order:            3,
			IsDefault:        true,
		},
	}
}

// EnsureDefaults seeds the collection with the default albums when it is
// empty. It runs once at startup and is idempotent, so a read never has
// to seed as a side effect.
func (s *AlbumService) EnsureDefaults(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check albums: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := s.store.InsertMany(ctx, DefaultAlbums()); err != nil {
		return fmt.Errorf("failed to seed default albums: %w", err)
	}
	return nil
}

// List returns all albums in display order
func (s *AlbumService) List(ctx context.Context) ([]models.Album, error) {
	return s.store.List(ctx)
}

// Reset wipes the collection and restores the default set
func (s *AlbumService) Reset(ctx context.Context) ([]models.Album, error) {
	if err := s.store.DeleteAll(ctx); err != nil {
		return nil, err
	}
	albums, err := s.store.InsertMany(ctx, DefaultAlbums())
	if err != nil {
		return nil, fmt.Errorf("failed to restore default albums: %w", err)
	}
	return albums, nil
}

// Update replaces an album's editable fields. Cover image is optional;
// when omitted the stored cover is kept.
func (s *AlbumService) Update(ctx context.Context, id string, fields models.AlbumFields) (*models.Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validationf("invalid album id")
	}
	if fields.Title == "" || fields.Description == "" || fields.GooglePhotosLink == "" {
		return nil, Validationf("title, description and googlePhotosLink are required")
	}
	album, err := s.store.Update(ctx, oid, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return album, nil
}

// UpdateCover normalizes a raw uploaded image into a square data-URI
// cover and stores it on the album
func (s *AlbumService) UpdateCover(ctx context.Context, id string, imageData []byte, targetKB int) (*models.Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validationf("invalid album id")
	}
	if len(imageData) == 0 {
		return nil, Validationf("image is required")
	}

	dataURI, err := imaging.SquareDataURI(imageData, targetKB)
	if err != nil {
		return nil, Validationf("could not decode image")
	}

	current, err := s.findByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	album, err := s.store.Update(ctx, oid, models.AlbumFields{
		Title:            current.Title,
		Description:      current.Description,
		GooglePhotosLink: current.GooglePhotosLink,
		CoverImage:       dataURI,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return album, nil
}

func (s *AlbumService) findByID(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	albums, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range albums {
		if albums[i].ID == id {
			return &albums[i], nil
		}
	}
	return nil, ErrNotFound
}
