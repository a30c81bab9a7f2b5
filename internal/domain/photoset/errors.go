package photoset

import "errors"

var (
	ErrMalformedRecord = errors.New("malformed photo record")
)
