package stories

import "errors"

// ErrUnknownStory is returned when opening an id that is not in the catalog
var ErrUnknownStory = errors.New("unknown story")
