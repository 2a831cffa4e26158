package services

import (
	"context"
	"fmt"

	"wedding-site-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimelineStore is the persistence surface the timeline service needs
type TimelineStore interface {
	List(ctx context.Context) ([]models.TimelineEvent, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, event models.TimelineEvent) (*models.TimelineEvent, error)
	InsertMany(ctx context.Context, events []models.TimelineEvent) ([]models.TimelineEvent, error)
	DeleteAll(ctx context.Context) error
	Update(ctx context.Context, id primitive.ObjectID, fields models.TimelineEventFields) (*models.TimelineEvent, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	MaxOrder(ctx context.Context) (int, error)
	SetOrders(ctx context.Context, updates []models.OrderUpdate) error
}

// TimelineService handles timeline business logic
type TimelineService struct {
	store TimelineStore
}

// NewTimelineService creates a new timeline service
func NewTimelineService(store TimelineStore) *TimelineService {
	return &TimelineService{store: store}
}

// DefaultEvents returns the seed set shipped with a fresh install
func DefaultEvents() []models.TimelineEvent {
	return []models.TimelineEvent{
		{
			Date:        "First Met",
			Title:       "Where It All Began",
			Description: "Our paths crossed for the first time, and little did we know, it was the beginning of forever.",
			Icon:        models.IconSparkles,
			Order:       0,
			IsDefault:   true,
		},
		{
			Date:        "First Date",
			Title:       "A Magical Evening",
			Description: "Coffee, conversation, and countless smiles. We knew there was something special between us.",
			Icon:        models.IconHeart,
			Order:       1,
			IsDefault:   true,
		},
		{
			Date:        "The Proposal",
			Title:       "Forever Starts Now",
			Description: "Under the stars, with hearts full of love, we decided to spend our lives together.",
			Icon:        models.IconHeart,
			Order:       2,
			IsDefault:   true,
		},
		{
			Date:        "December 14, 2025",
			Title:       "Wedding Reception",
			Description: "Celebrating our love with family and friends. Join us as we begin this beautiful journey together.",
			Icon:        models.IconSparkles,
			Order:       3,
			IsDefault:   true,
		},
	}
}

// EnsureDefaults seeds the collection with the default events when it is
// empty. It runs once at startup and is idempotent.
func (s *TimelineService) EnsureDefaults(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check timeline events: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := s.store.InsertMany(ctx, DefaultEvents()); err != nil {
		return fmt.Errorf("failed to seed default timeline events: %w", err)
	}
	return nil
}

// List returns all events in display order
func (s *TimelineService) List(ctx context.Context) ([]models.TimelineEvent, error) {
	return s.store.List(ctx)
}

// Reset wipes the collection and restores the default set
func (s *TimelineService) Reset(ctx context.Context) ([]models.TimelineEvent, error) {
	if err := s.store.DeleteAll(ctx); err != nil {
		return nil, err
	}
	events, err := s.store.InsertMany(ctx, DefaultEvents())
	if err != nil {
		return nil, fmt.Errorf("failed to restore default timeline events: %w", err)
	}
	return events, nil
}

// Create appends a new event after the current highest order
func (s *TimelineService) Create(ctx context.Context, fields models.TimelineEventFields) (*models.TimelineEvent, error) {
	if err := validateEventFields(&fields); err != nil {
		return nil, err
	}

	maxOrder, err := s.store.MaxOrder(ctx)
	if err != nil {
		return nil, err
	}

	event := models.TimelineEvent{
		Date:        fields.Date,
		Title:       fields.Title,
		Description: fields.Description,
		Icon:        fields.Icon,
		Order:       maxOrder + 1,
		IsDefault:   false,
	}
	return s.store.Insert(ctx, event)
}

// Update replaces an event's editable fields. An edited event is no
// longer considered a seed record.
func (s *TimelineService) Update(ctx context.Context, id string, fields models.TimelineEventFields) (*models.TimelineEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validationf("invalid event id")
	}
	if err := validateEventFields(&fields); err != nil {
		return nil, err
	}
	event, err := s.store.Update(ctx, oid, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return event, nil
}

// Delete removes an event and compacts the remaining order values into a
// dense 0..N-1 sequence matching their previous relative order
func (s *TimelineService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validationf("invalid event id")
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return mapStoreErr(err)
	}

	events, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to reindex timeline: %w", err)
	}
	updates := make([]models.OrderUpdate, len(events))
	for i, event := range events {
		updates[i] = models.OrderUpdate{ID: event.ID, Order: i}
	}
	if err := s.store.SetOrders(ctx, updates); err != nil {
		return fmt.Errorf("failed to reindex timeline: %w", err)
	}
	return nil
}

// ReorderRequest is one caller-supplied order assignment
type ReorderRequest struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Reorder applies a caller-supplied set of order assignments in one bulk
// write
func (s *TimelineService) Reorder(ctx context.Context, requests []ReorderRequest) error {
	if len(requests) == 0 {
		return Validationf("events are required")
	}
	updates := make([]models.OrderUpdate, len(requests))
	for i, req := range requests {
		oid, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			return Validationf("invalid event id: %s", req.ID)
		}
		updates[i] = models.OrderUpdate{ID: oid, Order: req.Order}
	}
	return s.store.SetOrders(ctx, updates)
}

func validateEventFields(fields *models.TimelineEventFields) error {
	if fields.Date == "" || fields.Title == "" || fields.Description == "" {
		return Validationf("date, title and description are required")
	}
	if fields.Icon == "" {
		fields.Icon = models.IconHeart
	}
	if fields.Icon != models.IconHeart && fields.Icon != models.IconSparkles {
		return Validationf("icon must be %q or %q", models.IconHeart, models.IconSparkles)
	}
	return nil
}
