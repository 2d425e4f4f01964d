package sokoban

import "errors"

// Load errors. They are always wrapped with detail, so match them with
// errors.Is.
var (
	ErrMalformedLevel = errors.New("malformed level")
	ErrMissingSpawn   = errors.New("missing spawn")
	ErrInvalidStyle   = errors.New("invalid style")
)
