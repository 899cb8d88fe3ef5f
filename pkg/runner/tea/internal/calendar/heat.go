package calendar

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/edc-app/edc/pkg/score"
)

var (
	heatLow  = colorful.Color{R: 0.84, G: 0.19, B: 0.12}
	heatMid  = colorful.Color{R: 0.99, G: 0.80, B: 0.36}
	heatHigh = colorful.Color{R: 0.10, G: 0.60, B: 0.31}
)

// Heat blends red through amber to green across 0-100. ok is false when the
// day has no data and should stay uncoloured.
func Heat(r score.Result) (colorful.Color, bool) {
	if !r.HasData {
		return colorful.Color{}, false
	}
	v := float64(r.Value) / 100
	switch {
	case v <= 0:
		return heatLow, true
	case v >= 1:
		return heatHigh, true
	case v < 0.5:
		return heatLow.BlendLab(heatMid, v*2).Clamped(), true
	}
	return heatMid.BlendLab(heatHigh, (v-0.5)*2).Clamped(), true
}
