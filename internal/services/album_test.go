package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"wedding-site-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumEnsureDefaults_SeedsOnce(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	albums, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 4)
	for i, album := range albums {
		assert.Equal(t, i, album.Order, "seed orders are unique and dense")
		assert.True(t, album.IsDefault)
	}

	require.NoError(t, svc.EnsureDefaults(ctx))
	albums, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, albums, 4)
}

func TestAlbumEnsureDefaults_StoreError(t *testing.T) {
	svc := NewAlbumService(&fakeAlbumStore{err: errStoreDown})
	assert.Error(t, svc.EnsureDefaults(context.Background()))
}

func TestAlbumUpdate(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	albums, _ := svc.List(ctx)
	target := albums[0]

	updated, err := svc.Update(ctx, target.ID.Hex(), models.AlbumFields{
		Title:            "Nikah",
		Description:      "The ceremony",
		GooglePhotosLink: "https://photos.google.com/nikah",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nikah", updated.Title)
	assert.Equal(t, target.CoverImage, updated.CoverImage, "omitted cover is kept")
}

func TestAlbumUpdate_Validation(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))
	albums, _ := svc.List(ctx)

	_, err := svc.Update(ctx, "not-hex", models.AlbumFields{
		Title: "a", Description: "b", GooglePhotosLink: "c",
	})
	_, ok := AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Update(ctx, albums[0].ID.Hex(), models.AlbumFields{Title: "only title"})
	_, ok = AsValidation(err)
	assert.True(t, ok)
}

func TestAlbumUpdate_NotFound(t *testing.T) {
	svc := NewAlbumService(&fakeAlbumStore{})

	_, err := svc.Update(context.Background(), "64b000000000000000000000", models.AlbumFields{
		Title: "a", Description: "b", GooglePhotosLink: "c",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlbumReset_RestoresDefaults(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	albums, _ := svc.List(ctx)
	_, err := svc.Update(ctx, albums[0].ID.Hex(), models.AlbumFields{
		Title: "Changed", Description: "d", GooglePhotosLink: "l",
	})
	require.NoError(t, err)

	restored, err := svc.Reset(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 4)
	assert.Equal(t, "Engagement Ceremony", restored[0].Title)
}

func TestAlbumUpdateCover(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))
	albums, _ := svc.List(ctx)
	target := albums[2]

	img := image.NewRGBA(image.Rect(0, 0, 200, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y * 2), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	updated, err := svc.UpdateCover(ctx, target.ID.Hex(), buf.Bytes(), 75)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.CoverImage, "data:image/jpeg;base64,"))
	assert.Equal(t, target.Title, updated.Title, "other fields untouched")
}

func TestAlbumUpdateCover_Errors(t *testing.T) {
	store := &fakeAlbumStore{}
	svc := NewAlbumService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))
	albums, _ := svc.List(ctx)

	_, err := svc.UpdateCover(ctx, albums[0].ID.Hex(), nil, 75)
	_, ok := AsValidation(err)
	assert.True(t, ok)

	_, err = svc.UpdateCover(ctx, albums[0].ID.Hex(), []byte("junk"), 75)
	_, ok = AsValidation(err)
	assert.True(t, ok)

	_, err = svc.UpdateCover(ctx, "64b000000000000000000000", []byte("junk"), 75)
	require.Error(t, err)
}
