package shapes

import (
	"fmt"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/morph/config"
)

// Palette samples particle base colors.
type Palette interface {
	Sample(rng *rand.Rand) colorful.Color
}

// weightedPalette picks one of a fixed set of colors by cumulative weight.
type weightedPalette struct {
	colors     []colorful.Color
	cumulative []float64
}

func (p *weightedPalette) Sample(rng *rand.Rand) colorful.Color {
	u := rng.Float64() * p.cumulative[len(p.cumulative)-1]
	for i, c := range p.cumulative {
		if u < c {
			return p.colors[i]
		}
	}
	return p.colors[len(p.colors)-1]
}

// hslPalette samples a hue band at fixed saturation and lightness.
// Hues are configured in turns [0, 1].
type hslPalette struct {
	hueBase, hueRange     float64
	saturation, lightness float64
}

func (p *hslPalette) Sample(rng *rand.Rand) colorful.Color {
	hue := p.hueBase + rng.Float64()*p.hueRange
	return colorful.Hsl(hue*360, p.saturation, p.lightness).Clamped()
}

// NewPalette builds the configured palette.
func NewPalette(cfg config.PaletteConfig) (Palette, error) {
	switch cfg.Mode {
	case "", "weighted":
		if len(cfg.Colors) == 0 {
			return nil, fmt.Errorf("palette: weighted mode needs at least one color")
		}
		p := &weightedPalette{}
		total := 0.0
		for _, wc := range cfg.Colors {
			c, err := colorful.Hex(wc.Hex)
			if err != nil {
				return nil, fmt.Errorf("palette: parsing %q: %w", wc.Hex, err)
			}
			if wc.Weight <= 0 {
				return nil, fmt.Errorf("palette: weight for %q must be > 0", wc.Hex)
			}
			total += wc.Weight
			p.colors = append(p.colors, c)
			p.cumulative = append(p.cumulative, total)
		}
		return p, nil
	case "hsl":
		return &hslPalette{
			hueBase:    cfg.HueBase,
			hueRange:   cfg.HueRange,
			saturation: cfg.Saturation,
			lightness:  cfg.Lightness,
		}, nil
	default:
		return nil, fmt.Errorf("palette: unknown mode %q", cfg.Mode)
	}
}
