package model

import "errors"

// ErrInsufficientData is returned when a series is too short to derive anything from.
var ErrInsufficientData = errors.New("insufficient data")
