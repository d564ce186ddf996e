package render

// Op kinds mirror the 2D canvas calls the browser replays.
const (
	OpScale      = "scale"
	OpFillRect   = "fillRect"
	OpStrokeLine = "strokeLine"
	OpFillText   = "fillText"
)

// Op is one serialized draw command.
type Op struct {
	Kind  string    `json:"op"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	X2    float64   `json:"x2,omitempty"`
	Y2    float64   `json:"y2,omitempty"`
	W     float64   `json:"w,omitempty"`
	H     float64   `json:"h,omitempty"`
	Text  string    `json:"text,omitempty"`
	Color string    `json:"color,omitempty"`
	Width float64   `json:"width,omitempty"`
	Dash  []float64 `json:"dash,omitempty"`
	Font  string    `json:"font,omitempty"`
	Ratio float64   `json:"ratio,omitempty"`
}

// Surface is a minimal 2D drawing target. A frame is a full repaint:
// implementations must not carry drawing state from one frame to the next.
type Surface interface {
	Scale(ratio float64)
	FillRect(x, y, w, h float64, color string)
	StrokeLine(x1, y1, x2, y2, width float64, color string, dash []float64)
	FillText(text string, x, y float64, font, color string)
}

// CommandList records draw commands for serialization; the browser canvas
// replays them in order.
type CommandList struct {
	Ops []Op `json:"ops"`
}

func NewCommandList() *CommandList { return &CommandList{} }

func (c *CommandList) Scale(ratio float64) {
	c.Ops = append(c.Ops, Op{Kind: OpScale, Ratio: ratio})
}

func (c *CommandList) FillRect(x, y, w, h float64, color string) {
	c.Ops = append(c.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: color})
}

func (c *CommandList) StrokeLine(x1, y1, x2, y2, width float64, color string, dash []float64) {
	c.Ops = append(c.Ops, Op{Kind: OpStrokeLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width, Color: color, Dash: dash})
}

func (c *CommandList) FillText(text string, x, y float64, font, color string) {
	c.Ops = append(c.Ops, Op{Kind: OpFillText, Text: text, X: x, Y: y, Font: font, Color: color})
}

// Reset clears the list for the next frame.
func (c *CommandList) Reset() { c.Ops = c.Ops[:0] }
