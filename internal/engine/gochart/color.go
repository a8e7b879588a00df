package gochart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ParseColor converts a CSS colour as used in chart specs (#rgb, #rrggbb,
// rgb(...) or rgba(...)) to a drawing colour.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return drawing.Color{}, fmt.Errorf("invalid hex colour %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return drawing.Color{}, fmt.Errorf("invalid hex colour %q", s)
		}
		return drawing.ColorFromHex(hex), nil
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
		if end < open {
			return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
		}
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
			}
			c[i] = uint8(v)
		}
		alpha := uint8(255)
		if len(parts) == 4 {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil || a < 0 || a > 1 {
				return drawing.Color{}, fmt.Errorf("invalid colour %q", s)
			}
			alpha = uint8(math.Round(a * 255))
		}
		return drawing.Color{R: c[0], G: c[1], B: c[2], A: alpha}, nil
	default:
		return drawing.Color{}, fmt.Errorf("unsupported colour %q", s)
	}
}

// colorOr parses s and returns fallback when s is empty or invalid.
func colorOr(s string, fallback drawing.Color) drawing.Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
