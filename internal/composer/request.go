package composer

import (
	"image"
	"image/color"
)

// Fixed encoding parameters. Version is auto-fitted by the encoder;
// everything else matches the classic "box size 10, border 4" layout.
const (
	// ModuleSize is the rendered width of one QR module in pixels.
	ModuleSize = 10
	// QuietZone is the blank border around the symbol, in modules.
	QuietZone = 4
	// LogoPadding is the total extra width of the white frame behind a logo, in pixels.
	LogoPadding = 10
	// MinLogoScale and MaxLogoScale bound the logo size as a percentage of the QR width.
	MinLogoScale = 10
	MaxLogoScale = 25
	// PreviewSide is the default longer side of a preview thumbnail.
	PreviewSide = 260
)

// EncodingRequest is an immutable description of one QR render. The UI
// layer owns its mutable form state and builds a fresh request per action.
type EncodingRequest struct {
	Payload    string
	Fill       color.RGBA
	Background color.RGBA
}

// NewEncodingRequest parses the fill and background color strings
// (named colors or hex) and builds a request. Color parse failures are
// ErrInput-kind errors.
func NewEncodingRequest(payload, fill, background string) (EncodingRequest, error) {
	fillColor, err := ParseColor(fill)
	if err != nil {
		return EncodingRequest{}, err
	}
	backColor, err := ParseColor(background)
	if err != nil {
		return EncodingRequest{}, err
	}
	return EncodingRequest{
		Payload:    payload,
		Fill:       fillColor,
		Background: backColor,
	}, nil
}

// LogoOverlay describes an optional centered logo. Source must already
// be decoded; Scale is a percentage of the QR width in [MinLogoScale, MaxLogoScale].
type LogoOverlay struct {
	Source image.Image
	Scale  float64
}
