package handlers

import (
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mhdservices/qrtool/internal/composer"
	"github.com/mhdservices/qrtool/internal/logo"
)

// QRCodeHandler renders a QR code PNG for the given text.
//
// Query parameters:
//
//	text    - payload to encode (required)
//	fill    - module color, named or hex (default "black")
//	bg      - background color, named or hex (default "white")
//	logo    - logo file name inside the configured logo directory
//	scale   - logo size as percent of QR width, clamped to [10,25] (default 25)
//	preview - when set, return a thumbnail whose longer side is this many pixels
//
// A logo that cannot be loaded does not fail the request: the un-logoed
// QR is served and the problem is reported in the X-QR-Logo-Error header.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	text := c.Query("text")
	fill := c.DefaultQuery("fill", "black")
	bg := c.DefaultQuery("bg", "white")

	req, err := composer.NewEncodingRequest(text, fill, bg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scale := float64(composer.MaxLogoScale)
	if s := c.Query("scale"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			scale = v
		}
	}
	if scale < composer.MinLogoScale {
		scale = composer.MinLogoScale
	}
	if scale > composer.MaxLogoScale {
		scale = composer.MaxLogoScale
	}

	var overlay *composer.LogoOverlay
	var logoErr error
	if name := c.Query("logo"); name != "" {
		path, err := h.logoPath(name)
		if err != nil {
			logoErr = err
		} else if src, err := logo.Load(path); err != nil {
			logoErr = err
		} else {
			overlay = &composer.LogoOverlay{Source: src, Scale: scale}
		}
	}

	img, err := composer.Compose(req, overlay)
	switch {
	case err == nil:
	case errors.Is(err, composer.ErrLogo) && img != nil:
		// Keep the base image, report the logo problem out of band.
		logoErr = err
	case errors.Is(err, composer.ErrInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}

	if logoErr != nil {
		c.Header("X-QR-Logo-Error", logoErr.Error())
	}

	if ps := c.Query("preview"); ps != "" {
		maxSide := composer.PreviewSide
		if v, err := strconv.Atoi(ps); err == nil && v > 0 {
			maxSide = v
		}
		img = composer.Thumbnail(img, maxSide)
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send QR code"})
	}
}

// logoPath resolves a requested logo name inside LogoDir. Names with
// path separators or traversal elements are rejected.
func (h *Handler) logoPath(name string) (string, error) {
	if h.LogoDir == "" {
		return "", fmt.Errorf("%w: no logo directory configured", composer.ErrLogo)
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid logo name %q", composer.ErrLogo, name)
	}
	return filepath.Join(h.LogoDir, name), nil
}
