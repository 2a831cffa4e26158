package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"wedding-site-backend/internal/imaging"
	"wedding-site-backend/internal/models"
	"wedding-site-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAlbumStore struct {
	albums []models.Album
	err    error
}

func (s *fakeAlbumStore) List(ctx context.Context) ([]models.Album, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Album, len(s.albums))
	copy(out, s.albums)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *fakeAlbumStore) Count(ctx context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.albums)), nil
}

func (s *fakeAlbumStore) InsertMany(ctx context.Context, albums []models.Album) ([]models.Album, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range albums {
		if albums[i].ID.IsZero() {
			albums[i].ID = primitive.NewObjectID()
		}
	}
	s.albums = append(s.albums, albums...)
	return albums, nil
}

func (s *fakeAlbumStore) DeleteAll(ctx context.Context) error {
	s.albums = nil
	return s.err
}

func (s *fakeAlbumStore) Update(ctx context.Context, id primitive.ObjectID, fields models.AlbumFields) (*models.Album, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.albums {
		if s.albums[i].ID == id {
			s.albums[i].Title = fields.Title
			s.albums[i].Description = fields.Description
			s.albums[i].GooglePhotosLink = fields.GooglePhotosLink
			if fields.CoverImage != "" {
				s.albums[i].CoverImage = fields.CoverImage
			}
			s.albums[i].UpdatedAt = time.Now()
			a := s.albums[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeTimelineStore struct {
	events []models.TimelineEvent
}

func (s *fakeTimelineStore) List(ctx context.Context) ([]models.TimelineEvent, error) {
	out := make([]models.TimelineEvent, len(s.events))
	copy(out, s.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *fakeTimelineStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.events)), nil
}

func (s *fakeTimelineStore) Insert(ctx context.Context, event models.TimelineEvent) (*models.TimelineEvent, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.events = append(s.events, event)
	return &event, nil
}

func (s *fakeTimelineStore) InsertMany(ctx context.Context, events []models.TimelineEvent) ([]models.TimelineEvent, error) {
	for i := range events {
		if events[i].ID.IsZero() {
			events[i].ID = primitive.NewObjectID()
		}
	}
	s.events = append(s.events, events...)
	return events, nil
}

func (s *fakeTimelineStore) DeleteAll(ctx context.Context) error {
	s.events = nil
	return nil
}

func (s *fakeTimelineStore) Update(ctx context.Context, id primitive.ObjectID, fields models.TimelineEventFields) (*models.TimelineEvent, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Date = fields.Date
			s.events[i].Title = fields.Title
			s.events[i].Description = fields.Description
			s.events[i].Icon = fields.Icon
			s.events[i].IsDefault = false
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeTimelineStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeTimelineStore) MaxOrder(ctx context.Context) (int, error) {
	max := -1
	for _, e := range s.events {
		if e.Order > max {
			max = e.Order
		}
	}
	return max, nil
}

func (s *fakeTimelineStore) SetOrders(ctx context.Context, updates []models.OrderUpdate) error {
	for _, u := range updates {
		for i := range s.events {
			if s.events[i].ID == u.ID {
				s.events[i].Order = u.Order
			}
		}
	}
	return nil
}

type fakeCardStore struct {
	cards  []models.MemoryCard
	serial int64
}

func (s *fakeCardStore) List(ctx context.Context, limit int64) ([]models.MemoryCard, error) {
	out := make([]models.MemoryCard, 0, len(s.cards))
	// newest first
	for i := len(s.cards) - 1; i >= 0; i-- {
		out = append(out, s.cards[i])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeCardStore) Get(ctx context.Context, id primitive.ObjectID) (*models.MemoryCard, error) {
	for i := range s.cards {
		if s.cards[i].ID == id {
			c := s.cards[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCardStore) Insert(ctx context.Context, card models.MemoryCard) (*models.MemoryCard, error) {
	if card.ID.IsZero() {
		card.ID = primitive.NewObjectID()
	}
	card.CreatedAt = time.Now()
	s.cards = append(s.cards, card)
	return &card, nil
}

func (s *fakeCardStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeCardStore) NextSerial(ctx context.Context) (int64, error) {
	s.serial++
	return s.serial, nil
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (u *fakeUploader) Upload(ctx context.Context, img *imaging.Image) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	url := "https://img.example.com/" + img.Name
	u.uploads = append(u.uploads, url)
	return url, nil
}

type fakeHub struct {
	created []models.MemoryCardView
	deleted []string
}

func (h *fakeHub) BroadcastCardCreated(card models.MemoryCardView) {
	h.created = append(h.created, card)
}

func (h *fakeHub) BroadcastCardDeleted(cardID string) {
	h.deleted = append(h.deleted, cardID)
}

var errStoreDown = errors.New("store down")
