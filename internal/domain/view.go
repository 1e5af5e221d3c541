package domain

// AutoplayState is the renderable part of an autoplay session.
type AutoplayState struct {
	Enabled   bool  `json:"enabled"`
	Countdown int   `json:"countdown"`
	Phase     Phase `json:"phase"`
}

// ViewState is a read-only snapshot of a viewer, consumed by renderers.
// Seq grows with every change, so a renderer can drop a snapshot older than
// the one it shows.
type ViewState struct {
	ViewerID string        `json:"viewer_id"`
	Seq      uint64        `json:"seq"`
	DeckID   string        `json:"deck_id"`
	DeckName string        `json:"deck_name"`
	Card     *Card         `json:"card"`
	Cursor   int           `json:"cursor"`
	Flip     FlipState     `json:"flip"`
	Progress Progress      `json:"progress"`
	Autoplay AutoplayState `json:"autoplay"`
	Shuffled bool          `json:"shuffled"`
}
