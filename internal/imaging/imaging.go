// Package imaging normalizes user-selected images before storage or upload.
//
// Two policies exist: SquareDataURI produces a center-cropped square JPEG
// embedded in a data URI, sized toward a target budget by a bounded binary
// search over the quality factor. Fit produces a JPEG that never exceeds
// the given pixel bounds, stepping quality down until the byte budget is
// met or the quality floor is reached.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultAvatarTargetKB is the size budget for album cover images
	DefaultAvatarTargetKB = 75

	// DefaultPhotoMaxKB bounds guest photo uploads
	DefaultPhotoMaxKB = 400
	// DefaultPhotoMaxWidth bounds guest photo width in pixels
	DefaultPhotoMaxWidth = 1200
	// DefaultPhotoMaxHeight bounds guest photo height in pixels
	DefaultPhotoMaxHeight = 1200

	avatarMinQuality  = 0.10
	avatarMaxQuality  = 0.95
	avatarSlackKB     = 5.0
	avatarMaxAttempts = 10
	photoStartQuality = 90
	photoQualityStep  = 10
	photoQualityFloor = 10
)

// Image is a normalized image artifact ready for upload
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// SquareDataURI center-crops the image to a square of side min(width, height)
// and re-encodes it as a JPEG data URI close to targetKB. The quality factor
// is found by binary search over [0.10, 0.95] in at most ten attempts; when
// no encoding lands within 5 KB of the target, the final midpoint wins.
func SquareDataURI(data []byte, targetKB int) (string, error) {
	if targetKB <= 0 {
		targetKB = DefaultAvatarTargetKB
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h {
		log.Warn().Int("width", w).Int("height", h).
			Msg("Cover image is not square, center-cropping")
	}

	side := w
	if h < w {
		side = h
	}
	sx := b.Min.X + (w-side)/2
	sy := b.Min.Y + (h-side)/2

	square := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(square, square.Bounds(), src, image.Pt(sx, sy), draw.Src)

	lo, hi := avatarMinQuality, avatarMaxQuality
	target := float64(targetKB)
	var best []byte
	var bestQuality float64

	for attempt := 0; attempt < avatarMaxAttempts; attempt++ {
		quality := (lo + hi) / 2
		encoded, err := encodeJPEG(square, int(math.Round(quality*100)))
		if err != nil {
			return "", err
		}
		best = encoded
		bestQuality = quality

		sizeKB := float64(len(encoded)) / 1024
		if math.Abs(sizeKB-target) < avatarSlackKB {
			break
		}
		if sizeKB > target {
			hi = quality
		} else {
			lo = quality
		}
	}

	log.Debug().
		Float64("quality", bestQuality).
		Int("size_kb", len(best)/1024).
		Msg("Cover image compressed")

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(best), nil
}

// Fit scales the image down (never up) so neither dimension exceeds the
// given bounds, then re-encodes it as JPEG at decreasing quality until the
// result fits maxKB or the quality floor is reached. The floor result is
// accepted regardless of size, so Fit always returns an image for any
// decodable input.
func Fit(data []byte, name string, maxKB, maxWidth, maxHeight int) (*Image, error) {
	if maxKB <= 0 {
		maxKB = DefaultPhotoMaxKB
	}
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultPhotoMaxHeight
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	outW, outH := w, h
	if w > maxWidth || h > maxHeight {
		scale := math.Min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
		outW = int(float64(w) * scale)
		outH = int(float64(h) * scale)
		if outW < 1 {
			outW = 1
		}
		if outH < 1 {
			outH = 1
		}
	}

	scaled := src
	if outW != w || outH != h {
		dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		scaled = dst
	}

	maxBytes := maxKB * 1024
	for quality := photoStartQuality; ; quality -= photoQualityStep {
		encoded, err := encodeJPEG(scaled, quality)
		if err != nil {
			return nil, err
		}
		if len(encoded) <= maxBytes || quality <= photoQualityFloor {
			return &Image{
				Name:        name,
				ContentType: "image/jpeg",
				Data:        encoded,
			}, nil
		}
	}
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
