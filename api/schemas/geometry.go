package schemas

// -- Layout Geometry Schemas --

// ElementGeometry defines the bounding box, vertices, and metadata of a laid-out element.
type ElementGeometry struct {
	// Vertices lists the corners clockwise from the top left as x, y pairs.
	Vertices []float64 `json:"vertices"`
	Width    int64     `json:"width"`
	Height   int64     `json:"height"`
	// TagName is upper case, e.g. "P" or "A".
	TagName string `json:"tagName"`
	// Type is the element's type attribute, when it has one.
	Type string `json:"type,omitempty"`
}

// Center returns the midpoint of the quad.
func (g *ElementGeometry) Center() (x, y float64) {
	if len(g.Vertices) < 8 {
		return 0, 0
	}
	for i := 0; i < 8; i += 2 {
		x += g.Vertices[i]
		y += g.Vertices[i+1]
	}
	return x / 4, y / 4
}
