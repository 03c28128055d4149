package model

import "github.com/pkg/errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMixedContent = errors.New("midi contains both drum and non-drum notes")
)
