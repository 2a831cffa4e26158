package services

import (
	"context"
	"fmt"
	"time"

	"wedding-site-backend/internal/imaging"
	"wedding-site-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMessageLength bounds a memory card message
const MaxMessageLength = 200

// MemoryCardStore is the persistence surface the card service needs
type MemoryCardStore interface {
	List(ctx context.Context, limit int64) ([]models.MemoryCard, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.MemoryCard, error)
	Insert(ctx context.Context, card models.MemoryCard) (*models.MemoryCard, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	NextSerial(ctx context.Context) (int64, error)
}

// Uploader pushes a normalized image to the external host and returns a
// public URL
type Uploader interface {
	Upload(ctx context.Context, img *imaging.Image) (string, error)
}

// Broadcaster fans card events out to live watchers
type Broadcaster interface {
	BroadcastCardCreated(card models.MemoryCardView)
	BroadcastCardDeleted(cardID string)
}

// MemoryCardService handles the guest memory wall
type MemoryCardService struct {
	store    MemoryCardStore
	auth     *AuthService
	uploader Uploader
	hub      Broadcaster
}

// NewMemoryCardService creates a new memory card service
func NewMemoryCardService(store MemoryCardStore, auth *AuthService, uploader Uploader, hub Broadcaster) *MemoryCardService {
	return &MemoryCardService{
		store:    store,
		auth:     auth,
		uploader: uploader,
		hub:      hub,
	}
}

// CreateCardInput is a guest submission
type CreateCardInput struct {
	Name              string
	Message           string
	Password          string
	DeviceFingerprint string
	Photo             []byte
	PhotoName         string
}

// Create validates a guest submission, normalizes and uploads its photo,
// assigns the next serial number and stores the card. The returned owner
// token is the caller's only proof of ownership for later deletion.
func (s *MemoryCardService) Create(ctx context.Context, in CreateCardInput) (*models.MemoryCardView, string, error) {
	if in.Name == "" || in.Message == "" || in.Password == "" || in.DeviceFingerprint == "" {
		return nil, "", Validationf("name, message, password and deviceFingerprint are required")
	}
	if err := s.auth.CheckGuestPassword(in.Password); err != nil {
		return nil, "", err
	}
	if len([]rune(in.Message)) > MaxMessageLength {
		return nil, "", Validationf("message must be %d characters or less", MaxMessageLength)
	}

	photoURL := ""
	if len(in.Photo) > 0 {
		img, err := imaging.Fit(in.Photo, in.PhotoName,
			imaging.DefaultPhotoMaxKB, imaging.DefaultPhotoMaxWidth, imaging.DefaultPhotoMaxHeight)
		if err != nil {
			return nil, "", Validationf("could not decode photo")
		}
		// a failed upload aborts the whole submission; no card without its photo
		photoURL, err = s.uploader.Upload(ctx, img)
		if err != nil {
			return nil, "", fmt.Errorf("failed to upload photo: %w", err)
		}
	}

	serial, err := s.store.NextSerial(ctx)
	if err != nil {
		return nil, "", err
	}

	card, err := s.store.Insert(ctx, models.MemoryCard{
		SerialNumber:      serial,
		Name:              in.Name,
		Message:           in.Message,
		Photo:             photoURL,
		DeviceFingerprint: in.DeviceFingerprint,
		Timestamp:         time.Now(),
	})
	if err != nil {
		return nil, "", err
	}

	ownerToken, err := s.auth.IssueOwnerToken(card.ID.Hex(), card.DeviceFingerprint)
	if err != nil {
		return nil, "", err
	}

	view := card.View(true)
	if s.hub != nil {
		s.hub.BroadcastCardCreated(view)
	}
	return &view, ownerToken, nil
}

// List returns cards newest first. IsOwner is set on cards whose stored
// fingerprint exactly matches the caller's; an absent fingerprint never
// owns anything.
func (s *MemoryCardService) List(ctx context.Context, limit int64, fingerprint string) ([]models.MemoryCardView, error) {
	cards, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]models.MemoryCardView, len(cards))
	for i, card := range cards {
		views[i] = card.View(isOwner(&card, fingerprint))
	}
	return views, nil
}

// Get returns a single card with its per-request ownership flag
func (s *MemoryCardService) Get(ctx context.Context, id, fingerprint string) (*models.MemoryCardView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validationf("invalid card id")
	}
	card, err := s.store.Get(ctx, oid)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	view := card.View(isOwner(card, fingerprint))
	return &view, nil
}

// DeleteAsOwner removes a card when the presented capability token was
// issued for it. A token for another card or another fingerprint is
// rejected with ErrForbidden; a missing or unverifiable token with
// ErrUnauthorized.
func (s *MemoryCardService) DeleteAsOwner(ctx context.Context, id, ownerToken string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validationf("invalid card id")
	}
	if ownerToken == "" {
		return ErrUnauthorized
	}
	tokenCardID, tokenFingerprint, err := s.auth.ParseOwnerToken(ownerToken)
	if err != nil {
		return err
	}

	card, err := s.store.Get(ctx, oid)
	if err != nil {
		return mapStoreErr(err)
	}
	if tokenCardID != card.ID.Hex() || tokenFingerprint != card.DeviceFingerprint {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		return mapStoreErr(err)
	}
	if s.hub != nil {
		s.hub.BroadcastCardDeleted(id)
	}
	return nil
}

// DeleteAsAdmin removes any card; the caller has already passed the admin
// session gate
func (s *MemoryCardService) DeleteAsAdmin(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validationf("invalid card id")
	}
	if _, err := s.store.Get(ctx, oid); err != nil {
		return mapStoreErr(err)
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return mapStoreErr(err)
	}
	if s.hub != nil {
		s.hub.BroadcastCardDeleted(id)
	}
	return nil
}

// isOwner is an exact, case-sensitive fingerprint comparison
func isOwner(card *models.MemoryCard, fingerprint string) bool {
	return fingerprint != "" && card.DeviceFingerprint == fingerprint
}
