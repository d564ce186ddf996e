package render

import (
	"math"
	"testing"

	"marketsim/internal/domain/models"
)

var testViewport = Viewport{Width: 800, Height: 400, PixelRatio: 1}

func TestDrawFrameEmptyDrawsNothing(t *testing.T) {
	cl := NewCommandList()
	DrawFrame(cl, nil, 108, testViewport)
	if len(cl.Ops) != 0 {
		t.Fatalf("empty history must be a no-op, got %d ops", len(cl.Ops))
	}
}

func TestDrawFrameSingleCandle(t *testing.T) {
	cl := NewCommandList()
	candles := []models.Candle{{Open: 100, High: 110, Low: 95, Close: 105}}
	DrawFrame(cl, candles, 108, testViewport)

	if len(cl.Ops) == 0 || cl.Ops[0].Kind != OpScale {
		t.Fatalf("frame must start with a scale op")
	}

	var background *Op
	var wick *Op
	var live *Op
	for i := range cl.Ops {
		op := &cl.Ops[i]
		switch {
		case op.Kind == OpFillRect && op.W == 800 && op.H == 400:
			background = op
		case op.Kind == OpStrokeLine && op.Color == "#26a69a":
			wick = op
		case op.Kind == OpStrokeLine && op.Dash != nil:
			live = op
		}
	}
	if background == nil {
		t.Fatalf("missing full-viewport background")
	}
	if wick == nil {
		t.Fatalf("missing bullish wick for close > open")
	}
	if live == nil {
		t.Fatalf("missing dashed live-price line")
	}

	// live 108 sits inside the 95..110 wick, so its line falls strictly
	// between the wick's y endpoints
	top := math.Min(wick.Y, wick.Y2)
	bottom := math.Max(wick.Y, wick.Y2)
	if !(live.Y > top && live.Y < bottom) {
		t.Fatalf("live line y=%v outside wick span [%v, %v]", live.Y, top, bottom)
	}
}

func TestDrawFrameWindowsLastFifty(t *testing.T) {
	candles := make([]models.Candle, 60)
	for i := range candles {
		p := 100 + float64(i)
		candles[i] = models.Candle{Open: p, High: p + 2, Low: p - 2, Close: p + 1}
	}
	cl := NewCommandList()
	DrawFrame(cl, candles, 0, testViewport)

	bodies := 0
	for _, op := range cl.Ops {
		if op.Kind == OpFillRect && (op.Color == "#26a69a" || op.Color == "#ef5350") {
			bodies++
		}
	}
	if bodies != 50 {
		t.Fatalf("expected 50 candle bodies, got %d", bodies)
	}
}

func TestDrawFrameFlatSeriesStaysFinite(t *testing.T) {
	candles := []models.Candle{
		{Open: 100, High: 100, Low: 100, Close: 100},
		{Open: 100, High: 100, Low: 100, Close: 100},
	}
	cl := NewCommandList()
	DrawFrame(cl, candles, 100, testViewport)

	for _, op := range cl.Ops {
		for _, v := range []float64{op.X, op.Y, op.X2, op.Y2, op.W, op.H} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite coordinate in %+v", op)
			}
		}
	}
}

func TestDrawFrameNoLiveLineWithoutPrice(t *testing.T) {
	cl := NewCommandList()
	DrawFrame(cl, []models.Candle{{Open: 100, High: 110, Low: 95, Close: 105}}, 0, testViewport)
	for _, op := range cl.Ops {
		if op.Kind == OpStrokeLine && op.Dash != nil {
			t.Fatalf("live line drawn with zero live price")
		}
	}
}

func TestViewportBackingSize(t *testing.T) {
	w, h := (Viewport{Width: 800, Height: 400, PixelRatio: 2}).BackingSize()
	if w != 1600 || h != 800 {
		t.Fatalf("backing size %vx%v, want 1600x800", w, h)
	}
	w, h = (Viewport{Width: 800, Height: 400}).BackingSize()
	if w != 800 || h != 400 {
		t.Fatalf("zero ratio defaults to 1, got %vx%v", w, h)
	}
}
