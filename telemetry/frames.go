package telemetry

import (
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
)

// FrameSample is one row of frames.csv.
type FrameSample struct {
	Tick        uint64  `csv:"tick"`
	Time        float64 `csv:"time"`
	DT          float64 `csv:"dt"`
	Policy      string  `csv:"policy"`
	Active      string  `csv:"active"`
	Dominant    string  `csv:"dominant"`
	ShapeFactor float64 `csv:"shape_factor"`
	Scroll      float64 `csv:"scroll"`
	PointerX    float64 `csv:"pointer_x"`
	PointerY    float64 `csv:"pointer_y"`

	WRandom   float64 `csv:"w_random"`
	WLogo     float64 `csv:"w_logo"`
	WSphere   float64 `csv:"w_sphere"`
	WDNA      float64 `csv:"w_dna"`
	WGrid     float64 `csv:"w_grid"`
	WDataGrid float64 `csv:"w_datagrid"`
	WTorus    float64 `csv:"w_torus"`
	WGalaxy   float64 `csv:"w_galaxy"`
	WCube     float64 `csv:"w_cube"`
}

// NewFrameSample flattens s into a CSV row.
func NewFrameSample(s *systems.FrameState) FrameSample {
	w := s.Blend.Values()
	return FrameSample{
		Tick:        s.Tick,
		Time:        s.Time,
		DT:          s.DT,
		Policy:      s.Policy.String(),
		Active:      s.Blend.Active().String(),
		Dominant:    s.Blend.Dominant().String(),
		ShapeFactor: s.ShapeFactor,
		Scroll:      s.Scroll,
		PointerX:    s.Pointer.Offset.X,
		PointerY:    s.Pointer.Offset.Y,

		WRandom:   w[shapes.Random],
		WLogo:     w[shapes.Logo],
		WSphere:   w[shapes.Sphere],
		WDNA:      w[shapes.DNA],
		WGrid:     w[shapes.Grid],
		WDataGrid: w[shapes.DataGrid],
		WTorus:    w[shapes.Torus],
		WGalaxy:   w[shapes.Galaxy],
		WCube:     w[shapes.Cube],
	}
}
