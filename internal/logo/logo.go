// Package logo loads center-logo images for QR compositing. Raster
// formats go through image.Decode; SVG files are rasterized at their
// intrinsic viewbox size.
package logo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/mhdservices/qrtool/internal/composer"
)

// Load reads a logo file into an image. All failures are
// composer.ErrLogo-kind errors; a failed logo never aborts the QR that
// was already rendered.
func Load(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return loadSVG(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", composer.ErrLogo, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", composer.ErrLogo, path, err)
	}
	return img, nil
}

func loadSVG(path string) (image.Image, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: read svg %s: %v", composer.ErrLogo, path, err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: svg %s has no usable viewbox", composer.ErrLogo, path)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
