package chart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// Tooltip placement relative to the pointer.
const (
	TooltipOffsetX = 15
	TooltipOffsetY = -40
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders money as "$3,200" or "$12.50".
func FormatAmount(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if rem := cents % 100; rem != 0 {
		return sign + "$" + printer.Sprintf("%d.%02d", cents/100, rem)
	}
	return sign + "$" + printer.Sprintf("%d", cents/100)
}

// TooltipState is what a renderer needs to place the floating label.
type TooltipState struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
	OwnerID string  `json:"owner_id"`
}

// Tooltip is the hidden/visible state machine of one chart instance.
// It is not safe for concurrent use; Board serializes access.
type Tooltip struct {
	owner string
	state TooltipState
}

// NewTooltip returns a hidden tooltip owned by the given chart instance.
func NewTooltip(owner string) *Tooltip {
	return &Tooltip{owner: owner, state: TooltipState{OwnerID: owner}}
}

// PointerMove shows the tooltip for the segment under p, or hides it.
func (t *Tooltip) PointerMove(p Point, ring Ring, segs []Segment) TooltipState {
	i, ok := HitTest(p, ring, segs)
	if !ok {
		return t.hide()
	}
	t.state = TooltipState{
		Visible: true,
		X:       p.X + TooltipOffsetX,
		Y:       p.Y + TooltipOffsetY,
		Text:    segs[i].Name + ": " + FormatAmount(segs[i].Amount),
		OwnerID: t.owner,
	}
	return t.state
}

// PointerLeave hides the tooltip unconditionally.
func (t *Tooltip) PointerLeave() TooltipState {
	return t.hide()
}

func (t *Tooltip) hide() TooltipState {
	t.state = TooltipState{OwnerID: t.owner}
	return t.state
}

// State returns the current state.
func (t *Tooltip) State() TooltipState {
	return t.state
}

// VisibleFor reports whether the tooltip should be drawn by instance owner.
func (s TooltipState) VisibleFor(owner string) bool {
	return s.Visible && s.OwnerID == owner
}
