package catalog

import "errors"

var (
	ErrInvalidSortOption = errors.New("invalid sort option")
	ErrSuperseded        = errors.New("request superseded by a newer one")
)
