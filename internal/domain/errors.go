package domain

import "errors"

var (
	ErrDeckNotFound    = errors.New("deck not found")
	ErrInvalidDeck     = errors.New("invalid deck")
	ErrDuplicateCardID = errors.New("duplicate card id")
	ErrViewerNotFound  = errors.New("viewer not found")
	ErrViewerClosed    = errors.New("viewer closed")
	ErrInvalidTiming   = errors.New("invalid autoplay timing")
)
