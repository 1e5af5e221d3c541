package http

import "github.com/randomtoy/flipdeck/internal/domain"

// ViewerResponse is the JSON shape of a viewer snapshot.
type ViewerResponse struct {
	ID          string             `json:"id"`
	Seq         uint64             `json:"seq"`
	Deck        DeckRef            `json:"deck"`
	Card        *CardResponse      `json:"card"`
	Orientation domain.Orientation `json:"orientation"`
	Animated    bool               `json:"animated"`
	Faces       []FaceResponse     `json:"faces"`
	Progress    ProgressResponse   `json:"progress"`
	Autoplay    AutoplayResponse   `json:"autoplay"`
	Shuffled    bool               `json:"shuffled"`
}

type DeckRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeckResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

type CardResponse struct {
	ID    int    `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FaceResponse tells a client renderer how to draw one side of the card.
// DurationMS is zero when the face should snap instead of animate.
type FaceResponse struct {
	Side       domain.Orientation `json:"side"`
	Text       string             `json:"text"`
	RotateX    float64            `json:"rotate_x"`
	DurationMS int64              `json:"duration_ms"`
}

type ProgressResponse struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	Label    string  `json:"label"`
}

type AutoplayResponse struct {
	Enabled   bool         `json:"enabled"`
	Countdown int          `json:"countdown"`
	Phase     domain.Phase `json:"phase"`
}

type MountRequest struct {
	Deck string `json:"deck"`
}

type AutoplayRequest struct {
	Enabled *bool `json:"enabled"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
