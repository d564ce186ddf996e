package render

import (
	"fmt"
	"math"

	"marketsim/internal/domain/models"
)

const (
	maxVisibleCandles = 50
	gridRows          = 10
	gridColEvery      = 5
	bodyWidthRatio    = 0.6
	rangePadRatio     = 0.10

	// minimum price range so a flat series still maps to finite pixels
	epsilonRange = 1e-9

	colorBackground = "#0d1117"
	colorGrid       = "#21262d"
	colorLabel      = "#8b949e"
	colorBullish    = "#26a69a"
	colorBearish    = "#ef5350"
	colorLive       = "#ff9800"
	colorLiveText   = "#000000"

	labelFont    = "10px monospace"
	liveBoxWidth = 56.0
	liveBoxHalf  = 8.0
)

// Viewport is the CSS-pixel size of the chart area plus the device pixel
// ratio of the display.
type Viewport struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
}

// BackingSize returns the physical backing-store dimensions: CSS size times
// the device pixel ratio, so strokes stay crisp on high-density displays.
func (v Viewport) BackingSize() (w, h float64) {
	r := v.PixelRatio
	if r <= 0 {
		r = 1
	}
	return v.Width * r, v.Height * r
}

// DrawFrame repaints the chart from scratch: gridlines with price labels,
// one wick and body per visible candle, and a dashed live-price marker.
// The visible window is the last 50 candles; the vertical scale comes from
// that window's extremes padded 10% each side, so it is recomputed every
// frame and can jump as the window slides. An empty candle slice draws
// nothing.
func DrawFrame(s Surface, candles []models.Candle, livePrice float64, vp Viewport) {
	if len(candles) == 0 {
		return
	}
	ratio := vp.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	s.Scale(ratio)

	w, h := vp.Width, vp.Height
	visible := candles
	if len(visible) > maxVisibleCandles {
		visible = visible[len(visible)-maxVisibleCandles:]
	}

	minP, maxP := visible[0].Low, visible[0].High
	for _, c := range visible[1:] {
		if c.Low < minP {
			minP = c.Low
		}
		if c.High > maxP {
			maxP = c.High
		}
	}
	pad := (maxP - minP) * rangePadRatio
	chartMin := minP - pad
	rng := (maxP + pad) - chartMin
	if rng < epsilonRange {
		rng = epsilonRange
	}
	yFor := func(p float64) float64 { return h - (p-chartMin)/rng*h }
	slot := w / float64(len(visible))

	s.FillRect(0, 0, w, h, colorBackground)

	for i := 0; i < gridRows; i++ {
		y := h / gridRows * float64(i)
		s.StrokeLine(0, y, w, y, 1, colorGrid, nil)
		price := chartMin + (h-y)/h*rng
		s.FillText(fmt.Sprintf("%.2f", price), 4, y+10, labelFont, colorLabel)
	}
	for i := 0; i < len(visible); i += gridColEvery {
		x := float64(i) * slot
		s.StrokeLine(x, 0, x, h, 1, colorGrid, nil)
	}

	for i, c := range visible {
		center := float64(i)*slot + slot/2
		color := colorBearish
		if c.Close > c.Open {
			color = colorBullish
		}

		s.StrokeLine(center, yFor(c.High), center, yFor(c.Low), 1, color, nil)

		bodyTop := math.Min(yFor(c.Open), yFor(c.Close))
		bodyH := math.Abs(yFor(c.Open) - yFor(c.Close))
		if bodyH < 1 {
			bodyH = 1
		}
		bodyW := slot * bodyWidthRatio
		s.FillRect(center-bodyW/2, bodyTop, bodyW, bodyH, color)
	}

	if livePrice > 0 {
		y := yFor(livePrice)
		s.StrokeLine(0, y, w, y, 1, colorLive, []float64{5, 5})
		s.FillRect(w-liveBoxWidth, y-liveBoxHalf, liveBoxWidth, liveBoxHalf*2, colorLive)
		s.FillText(fmt.Sprintf("%.2f", livePrice), w-liveBoxWidth+4, y+4, labelFont, colorLiveText)
	}
}
