package content

import "errors"

var (
	// ErrNoSlides is returned when a story has no slides
	ErrNoSlides = errors.New("story has no slides")

	// ErrDuplicateID is returned when two stories or two posts share an id
	ErrDuplicateID = errors.New("duplicate content id")

	// ErrMissingID is returned when a story, post or person has no id
	ErrMissingID = errors.New("content id is required")
)
