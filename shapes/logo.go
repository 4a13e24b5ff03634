package shapes

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
)

// ErrEmptyMask is returned when the logo raster contains no collectable pixels.
var ErrEmptyMask = errors.New("logo mask is empty")

// Mask is the set of points collected from the rasterized logo text.
type Mask struct {
	Width, Height int
	Points        []r3.Vec // World-space points, row-major scan order
}

// loadFont returns the configured font, or the embedded Go Bold face.
func loadFont(path string) (*opentype.Font, error) {
	data := gobold.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return f, nil
}

// RasterizeText draws the logo text centered on an offscreen alpha bitmap.
// The baseline is placed so the em box is vertically centered.
func RasterizeText(cfg config.LogoConfig) (*image.Alpha, error) {
	f, err := loadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	img := image.NewAlpha(image.Rect(0, 0, cfg.Width, cfg.Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
	}

	advance := d.MeasureString(cfg.Text)
	metrics := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: (fixed.I(cfg.Width) - advance) / 2,
		Y: fixed.I(cfg.Height/2) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(cfg.Text)

	return img, nil
}

// SampleMask scans img every step pixels and collects pixels whose alpha exceeds
// threshold, mapped to world space: x' = (x - w/2)*scale, y' = -(y - h/2)*scale, z = 0.
func SampleMask(img *image.Alpha, step int, threshold uint8, scale float64) Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := Mask{Width: w, Height: h}
	if step < 1 {
		step = 1
	}

	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			if img.AlphaAt(b.Min.X+x, b.Min.Y+y).A > threshold {
				mask.Points = append(mask.Points, r3.Vec{
					X: (float64(x) - float64(w)/2) * scale,
					Y: -(float64(y) - float64(h)/2) * scale,
					Z: 0,
				})
			}
		}
	}
	return mask
}

// BuildMask rasterizes and samples the configured logo text.
func BuildMask(cfg config.LogoConfig) (Mask, error) {
	img, err := RasterizeText(cfg)
	if err != nil {
		return Mask{}, err
	}
	return SampleMask(img, cfg.Step, cfg.Threshold, cfg.Scale), nil
}

// LogoFunc assigns particle i the i-th mask point (with depth jitter) while points
// last; later particles scatter around a randomly chosen mask point.
// The mask must be non-empty.
func LogoFunc(mask Mask, cfg config.LogoConfig) PointFunc {
	pts := mask.Points
	return func(i, _ int, rng *rand.Rand) r3.Vec {
		if i < len(pts) {
			p := pts[i]
			p.Z += centered(rng, cfg.JitterZ)
			return p
		}
		p := pts[rng.Intn(len(pts))]
		return r3.Vec{
			X: p.X + centered(rng, cfg.Scatter),
			Y: p.Y + centered(rng, cfg.Scatter),
			Z: centered(rng, cfg.ScatterZ),
		}
	}
}
