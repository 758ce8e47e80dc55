package draft

import "errors"

// ErrUnknownCategorySet is returned for a category set name that is not registered.
var ErrUnknownCategorySet = errors.New("unknown category set")
