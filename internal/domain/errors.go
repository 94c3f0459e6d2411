package domain

import "errors"

var (
	ErrUnknownContract = errors.New("unknown contract type")
	ErrUnsupportedYear = errors.New("unsupported tax year")
)
