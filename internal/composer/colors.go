package composer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves a color string into an opaque RGBA value. It
// accepts SVG 1.1 color names ("black", "navy", ...) and 6-digit hex
// with or without a leading '#'. Anything else is an ErrInput error.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return color.RGBA{}, fmt.Errorf("%w: color must not be empty", ErrInput)
	}

	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(v, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: unknown color %q", ErrInput, s)
	}

	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{}, fmt.Errorf("%w: invalid hex color %q", ErrInput, s)
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}
