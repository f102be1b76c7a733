// Package chart turns categorized totals into donut-ring segments and maps
// pointer coordinates back to the segment under the cursor.
//
// Geometry and hit testing are pure functions (Aggregate, BuildSegments,
// HitTest) so they can be exercised directly with synthetic data; Tooltip,
// Donut and Board add the per-instance event state on top of them.
package chart

import "math"

// Point is a pixel coordinate in the chart's local drawing area. Y grows
// downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring describes the circle every segment is stroked on.
type Ring struct {
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
	StrokeWidth float64 `json:"stroke_width"`
}

// DefaultRing matches a 300x300 drawing area.
func DefaultRing() Ring {
	return Ring{
		Center:      Point{X: 150, Y: 150},
		Radius:      105,
		StrokeWidth: 22,
	}
}

// Circumference is the full stroke length of the ring.
func (r Ring) Circumference() float64 {
	return 2 * math.Pi * r.Radius
}

// Size is the side of the square drawing area centered on the ring.
func (r Ring) Size() float64 {
	return 2 * math.Max(r.Center.X, r.Center.Y)
}

// InBand reports whether p lies in the annulus [R-W, R+W] around the center.
func (r Ring) InBand(p Point) bool {
	dx := p.X - r.Center.X
	dy := p.Y - r.Center.Y
	distance := math.Sqrt(dx*dx + dy*dy)
	return distance >= r.Radius-r.StrokeWidth && distance <= r.Radius+r.StrokeWidth
}
