package chart

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/plotutil"

	"boxoffice/internal/services"
)

// ParsePalette converts "#rrggbb" strings into colors. An empty input yields
// the plotutil default palette.
func ParsePalette(values []string) ([]color.Color, error) {
	if len(values) == 0 {
		return append([]color.Color(nil), plotutil.DefaultColors...), nil
	}
	out := make([]color.Color, 0, len(values))
	for _, raw := range values {
		c, err := parseHex(raw)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, stageChart, "palette", err.Error(), nil)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseHex(raw string) (color.Color, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(value) != 6 {
		return nil, fmt.Errorf("color %q must be #rrggbb", raw)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(value, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("color %q: %w", raw, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func pick(palette []color.Color, i int) color.Color {
	if len(palette) == 0 {
		return plotutil.Color(i)
	}
	return palette[i%len(palette)]
}
