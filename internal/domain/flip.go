package domain

import "time"

// FlipDuration is how long renderers interpolate an animated flip.
const FlipDuration = 500 * time.Millisecond

// FlipState is the orientation of the displayed card. Animated is true only
// after a user or autoplay flip; programmatic jumps clear it so the next card
// snaps into place instead of appearing mid-turn.
type FlipState struct {
	Orientation Orientation `json:"orientation"`
	Animated    bool        `json:"animated"`
}

// NewFlipState returns a front-facing, static state.
func NewFlipState() FlipState {
	return FlipState{Orientation: Front}
}

// Flip turns the card over.
func (f *FlipState) Flip() {
	if f.Orientation == Back {
		f.Orientation = Front
	} else {
		f.Orientation = Back
	}
	f.Animated = true
}

// Reset shows the front face without animation.
func (f *FlipState) Reset() {
	f.Orientation = Front
	f.Animated = false
}

// Rotation returns the X-axis rotation in degrees for one face of the card.
// The front face turns 0→180 and the back face 180→360, so exactly one face
// points at the viewer at rest.
func (f FlipState) Rotation(face Orientation) float64 {
	turned := 0.0
	if f.Orientation == Back {
		turned = 180
	}
	if face == Back {
		return 180 + turned
	}
	return turned
}
