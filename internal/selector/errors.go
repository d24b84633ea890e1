package selector

import "errors"

var (
	ErrNotFound          = errors.New("selector: item not found")
	ErrInvalidIdentity   = errors.New("selector: item has an empty identity")
	ErrDuplicateIdentity = errors.New("selector: duplicate identity in listing")
)
