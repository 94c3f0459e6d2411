package calculation

import "errors"

var (
	ErrUnsupportedRegime   = errors.New("unsupported regime")
	ErrInvalidBracketTable = errors.New("invalid tax bracket table")
	ErrInvalidRateTable    = errors.New("invalid rate table")
)
