package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

/* =======================================================================
   WebP options
======================================================================= */

type WebPOptions struct {
	MaxW        int     // resize keep-aspect when wider
	MaxH        int     // resize keep-aspect when taller
	TargetKB    int     // 0 = single pass with Quality
	Quality     float32 // default quality / initial guess
	MinQ        float32
	MaxQ        float32
	ToleranceKB int
	ThumbW      int
	ThumbH      int
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:        1600,
		MaxH:        1600,
		Quality:     80,
		MinQ:        45,
		MaxQ:        85,
		ToleranceKB: 8,
		ThumbW:      480,
		ThumbH:      320,
	}
}

// decodeImage honours EXIF orientation. webp is registered by chai2010/webp.
func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	return img, nil
}

// downscaleIfNeeded keeps aspect ratio and uses CatmullRom.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeWebPQuality(img image.Image, q float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeWebP binary-searches quality when TargetKB is set.
func encodeWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	if opt.TargetKB <= 0 {
		return encodeWebPQuality(img, q)
	}

	target := (opt.TargetKB + max(opt.ToleranceKB, 0)) * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}
	if low > high {
		low, high = high, low
	}

	var best []byte
	for i := 0; i < 8; i++ {
		mid := (low + high) / 2
		data, err := encodeWebPQuality(img, mid)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = mid
		} else {
			high = mid
		}
	}
	if best == nil {
		return encodeWebPQuality(img, low)
	}
	return best, nil
}

// ConvertImage returns the resized WebP and a cropped WebP thumbnail.
func ConvertImage(data []byte, opt WebPOptions) (full []byte, thumb []byte, err error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, nil, err
	}
	full, err = encodeWebP(downscaleIfNeeded(img, opt.MaxW, opt.MaxH), opt)
	if err != nil {
		return nil, nil, fmt.Errorf("webp encode: %w", err)
	}

	tw, th := opt.ThumbW, opt.ThumbH
	if tw <= 0 || th <= 0 {
		tw, th = 480, 320
	}
	thumbImg := imaging.Fill(img, tw, th, imaging.Center, imaging.Lanczos)
	thumb, err = encodeWebPQuality(thumbImg, 70)
	if err != nil {
		return nil, nil, fmt.Errorf("webp thumbnail: %w", err)
	}
	return full, thumb, nil
}
