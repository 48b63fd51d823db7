package acoustics

import "errors"

var (
	ErrNegativeHumidity       = errors.New("atmospheric humidity must be non-negative")
	ErrNonPositiveTemperature = errors.New("atmospheric temperature must be above absolute zero")
)
