// Package composer renders QR code rasters: payload encoding, optional
// centered logo compositing on a white padding frame, preview
// thumbnails and PNG persistence.
package composer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// pngBuffer adapts bytes.Buffer to the WriteCloser the QR writer wants.
type pngBuffer struct {
	bytes.Buffer
}

func (b *pngBuffer) Close() error { return nil }

// Encode renders the request payload into a square QR raster using the
// fixed module size, quiet zone and the highest error-correction level
// (~30% recoverable). The smallest version that fits the payload is
// selected automatically. An empty or whitespace-only payload is an
// ErrInput error; no image is produced then.
//
// The output side is (modules + 2*QuietZone) * ModuleSize pixels.
func Encode(req EncodingRequest) (image.Image, error) {
	payload := strings.TrimSpace(req.Payload)
	if payload == "" {
		return nil, fmt.Errorf("%w: payload must not be empty", ErrInput)
	}

	qrc, err := qrcode.NewWith(payload,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: encode payload: %v", ErrInput, err)
	}

	buf := &pngBuffer{}
	w := standard.NewWithWriter(buf,
		standard.WithQRWidth(ModuleSize),
		standard.WithBorderWidth(QuietZone*ModuleSize),
		standard.WithFgColor(req.Fill),
		standard.WithBgColor(req.Background),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("%w: render qr image: %v", ErrInput, err)
	}

	img, err := png.Decode(&buf.Buffer)
	if err != nil {
		return nil, fmt.Errorf("%w: decode rendered qr: %v", ErrInput, err)
	}
	return img, nil
}

// OverlayLogo pastes logo centered on base, framed by an opaque white
// padding square. The logo is Lanczos-resized to S x S with
// S = floor(baseWidth * scalePercent / 100), placed on a white
// (S+LogoPadding) square canvas honoring the logo's own alpha, and the
// fully opaque canvas replaces the covered center region of base.
//
// The result has the same bounds as base; neither input is modified.
// The underlying modules are simply obscured, so scannability relies on
// the error-correction margin, which the fixed highest level provides
// for scales within [MinLogoScale, MaxLogoScale].
func OverlayLogo(base, logo image.Image, scalePercent float64) (image.Image, error) {
	if logo == nil {
		return nil, fmt.Errorf("%w: no logo image", ErrLogo)
	}

	baseW := base.Bounds().Dx()
	baseH := base.Bounds().Dy()
	side := int(float64(baseW) * scalePercent / 100.0)
	if side <= 0 {
		return nil, fmt.Errorf("%w: logo scale %.1f%% yields empty logo", ErrLogo, scalePercent)
	}

	resized := imaging.Resize(logo, side, side, imaging.Lanczos)

	padded := imaging.New(side+LogoPadding, side+LogoPadding, color.NRGBA{255, 255, 255, 255})
	padded = imaging.Overlay(padded, resized, image.Pt(LogoPadding/2, LogoPadding/2), 1.0)

	pos := image.Pt(
		(baseW-padded.Bounds().Dx())/2,
		(baseH-padded.Bounds().Dy())/2,
	)
	return imaging.Paste(base, padded, pos), nil
}

// Compose encodes the request and, when overlay is present, stamps the
// logo on top. If the overlay step fails, the already rendered base
// image is returned TOGETHER with the ErrLogo-kind error so the caller
// can still use or discard the un-logoed QR.
func Compose(req EncodingRequest, overlay *LogoOverlay) (image.Image, error) {
	base, err := Encode(req)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return base, nil
	}

	out, err := OverlayLogo(base, overlay.Source, overlay.Scale)
	if err != nil {
		return base, err
	}
	return out, nil
}

// Thumbnail resizes img so its longer side equals maxSide, preserving
// aspect ratio, using the same Lanczos filter as the logo path.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxSide, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxSide, imaging.Lanczos)
}

// SavePNG writes img as PNG to path, appending a ".png" extension when
// missing, and returns the path actually written. The file is written
// to a temporary name in the destination directory and renamed into
// place, so a failed save leaves no partial file behind. Failures are
// ErrIO-kind errors.
func SavePNG(img image.Image, path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".qrtool-*.png")
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrIO, path, err)
	}
	tmpName := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: encode %s: %v", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: close %s: %v", ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: rename into %s: %v", ErrIO, path, err)
	}
	return path, nil
}
