package domain

import "errors"

var (
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrUnsupportedStore = errors.New("unsupported store scheme")
)
