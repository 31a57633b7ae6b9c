package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Directory repository sentinels.
	ErrDirectoryEmailExists = errors.New("directory email already exists")
)
