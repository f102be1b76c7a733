package chart

import "github.com/skprof1/expenses-tracker/internal/core"

// Weighting selects which Share field sizes the arcs.
type Weighting int

const (
	ByPercentage Weighting = iota
	ByAmount
)

func (w Weighting) value(s Share) float64 {
	if w == ByAmount {
		return s.Amount.Units()
	}
	return s.Percentage
}

// Segment is the angular slice of the ring drawn for one share.
//
// Angles are in degrees in the visual convention shared with HitTest.
// DashArray and StrokeDashOffset are ready to hand to a stroke renderer that
// draws each segment as a full circle.
type Segment struct {
	Name             string     `json:"name"`
	Color            string     `json:"color"`
	Amount           core.Money `json:"-"`
	Percentage       float64    `json:"percentage"`
	StartAngle       float64    `json:"start_angle"`
	EndAngle         float64    `json:"end_angle"`
	ArcLength        float64    `json:"arc_length"`
	DashOffset       float64    `json:"dash_offset"`
	DashArray        [2]float64 `json:"dash_array"`
	StrokeDashOffset float64    `json:"stroke_dash_offset"`
}

// BuildSegments partitions the ring between shares in order.
//
// A zero total is replaced by 1 so an all-zero input still yields finite
// (empty) arcs. The quarter-circumference shift in StrokeDashOffset is the
// rotation HitTest undoes with its 270 degree correction; the two must stay
// in step.
func BuildSegments(shares []Share, ring Ring, w Weighting) []Segment {
	if len(shares) == 0 {
		return nil
	}

	var total float64
	for _, s := range shares {
		total += w.value(s)
	}
	if total == 0 {
		total = 1
	}

	circ := ring.Circumference()
	segs := make([]Segment, len(shares))
	var cum float64
	for i, s := range shares {
		v := w.value(s)
		start := cum / total * 360
		end := (cum + v) / total * 360
		arc := v / total * circ
		offset := circ * start / 360

		segs[i] = Segment{
			Name:             s.Name,
			Color:            s.Color,
			Amount:           s.Amount,
			Percentage:       s.Percentage,
			StartAngle:       start,
			EndAngle:         end,
			ArcLength:        arc,
			DashOffset:       offset,
			DashArray:        [2]float64{arc, circ - arc},
			StrokeDashOffset: -(circ / 4) - offset,
		}
		cum += v
	}
	return segs
}
