package board

// Kind tags the closed set of entity variants.
type Kind uint8

const (
	KindBall Kind = iota
	KindSquare
	KindCircle
	KindTriangle
	KindAbsorber
	KindWall
)

var kindNames = [...]string{
	KindBall:     "ball",
	KindSquare:   "squareBumper",
	KindCircle:   "circleBumper",
	KindTriangle: "triangleBumper",
	KindAbsorber: "absorber",
	KindWall:     "outerWall",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Color is the display color a renderer should use for an entity.
type Color uint8

const (
	Black Color = iota
	Blue
	Red
	Orange
	Green
)

var colorHex = [...]string{
	Black:  "#000000",
	Blue:   "#0000ff",
	Red:    "#ff0000",
	Orange: "#ffc800",
	Green:  "#00ff00",
}

var colorNames = [...]string{
	Black:  "black",
	Blue:   "blue",
	Red:    "red",
	Orange: "orange",
	Green:  "green",
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	if int(c) < len(colorHex) {
		return colorHex[c]
	}
	return colorHex[Black]
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Rect is an axis-aligned footprint on the integer board grid.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether the two footprints share any grid cell.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}
