package models

import (
	"errors"
)

var (
	// ErrModelUnavailable is returned for any non-empty classification
	// request while the model artifacts are not loaded.
	ErrModelUnavailable = errors.New("classification model not loaded")

	ErrUnknownProvider = errors.New("unknown suggestion provider")
)
