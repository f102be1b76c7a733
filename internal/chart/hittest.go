package chart

import "math"

// VisualAngle converts the pointer's raw screen angle (0 at 3 o'clock,
// y down) into the segment angle convention, in [0, 360).
func VisualAngle(p Point, ring Ring) float64 {
	dx := p.X - ring.Center.X
	dy := p.Y - ring.Center.Y
	raw := math.Atan2(dy, dx) * (180 / math.Pi)
	if raw < 0 {
		raw += 360
	}
	return math.Mod(raw+270, 360)
}

// HitTest returns the index of the segment under p. Points outside the ring
// band miss before any angle math is done.
func HitTest(p Point, ring Ring, segs []Segment) (int, bool) {
	if len(segs) == 0 || !ring.InBand(p) {
		return -1, false
	}
	return SegmentAt(VisualAngle(p, ring), segs)
}

// SegmentAt scans segs in order for the half-open range [start, end)
// containing angle, so a boundary belongs to the later segment.
func SegmentAt(angle float64, segs []Segment) (int, bool) {
	for i := range segs {
		if angle >= segs[i].StartAngle && angle < segs[i].EndAngle {
			return i, true
		}
	}
	return -1, false
}
