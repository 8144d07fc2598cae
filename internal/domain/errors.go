package domain

import "errors"

var (
	ErrNoValidPositions = errors.New("no valid positions")
	ErrDeckNotFound     = errors.New("deck not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSteps     = errors.New("animation steps must be at least 1")
	ErrOrderMismatch    = errors.New("start and target orders hold different cards")
)
