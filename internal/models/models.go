package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimelineEvent icons shown on the public timeline
const (
	IconHeart    = "heart"
	IconSparkles = "sparkles"
)

// Album represents a photo album card on the public site
type Album struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	CoverImage       string             `bson:"coverImage" json:"coverImage"` // data URI or URL
	GooglePhotosLink string             `bson:"googlePhotosLink" json:"googlePhotosLink"`
	Order            int                `bson:"order" json:"order"`
	IsDefault        bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt        time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"-"`
}

// AlbumFields is the editable subset of an album. An empty CoverImage
// leaves the stored cover untouched.
type AlbumFields struct {
	Title            string
	Description      string
	GooglePhotosLink string
	CoverImage       string
}

// TimelineEvent represents a relationship milestone. Date is a free-text
// label ("First Met", "December 14, 2025"), not a parsed date.
type TimelineEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        string             `bson:"date" json:"date"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	Order       int                `bson:"order" json:"order"`
	IsDefault   bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt   time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"-"`
}

// TimelineEventFields is the editable subset of a timeline event.
// Applying it always clears the isDefault flag.
type TimelineEventFields struct {
	Date        string
	Title       string
	Description string
	Icon        string
}

// OrderUpdate assigns a display order to one record
type OrderUpdate struct {
	ID    primitive.ObjectID
	Order int
}

// MemoryCard is a guest-submitted message on the memory wall.
// DeviceFingerprint is an opaque client identity and never leaves the server.
type MemoryCard struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	SerialNumber      int64              `bson:"serialNumber"`
	Name              string             `bson:"name"`
	Message           string             `bson:"message"`
	Photo             string             `bson:"photo,omitempty"`
	DeviceFingerprint string             `bson:"deviceFingerprint"`
	Timestamp         time.Time          `bson:"timestamp"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// MemoryCardView is the public shape of a card. IsOwner is computed
// per request from the caller's fingerprint.
type MemoryCardView struct {
	ID           string    `json:"id"`
	SerialNumber int64     `json:"serialNumber"`
	Name         string    `json:"name"`
	Message      string    `json:"message"`
	Photo        string    `json:"photo,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	IsOwner      bool      `json:"isOwner"`
}

// View projects a card for API responses
func (c *MemoryCard) View(isOwner bool) MemoryCardView {
	return MemoryCardView{
		ID:           c.ID.Hex(),
		SerialNumber: c.SerialNumber,
		Name:         c.Name,
		Message:      c.Message,
		Photo:        c.Photo,
		Timestamp:    c.Timestamp,
		IsOwner:      isOwner,
	}
}
