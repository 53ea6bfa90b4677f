package contentservice

import "errors"

var ErrNotFound = errors.New("content not found")
