package domain

import "fmt"

// Progress is the position of the current card within the active order.
type Progress struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

// ProgressOf locates currentID in active by id match. A card missing from
// active, as during a reshuffle, yields position 0.
func ProgressOf(active []Card, currentID int) Progress {
	p := Progress{Total: len(active)}
	for i, c := range active {
		if c.ID == currentID {
			p.Position = i + 1
			break
		}
	}
	return p
}

// Fraction returns the filled share of a progress bar in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 || p.Position <= 0 {
		return 0
	}
	return float64(p.Position) / float64(p.Total)
}

func (p Progress) Label() string {
	return fmt.Sprintf("%d / %d", p.Position, p.Total)
}
