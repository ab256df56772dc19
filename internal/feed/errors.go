package feed

import "errors"

// ErrUnknownPost is returned for a post id that is not in the content table
var ErrUnknownPost = errors.New("unknown post")
