package content

import "errors"

var (
	ErrUpstreamStatus  = errors.New("content: unexpected upstream status")
	ErrUpstreamPayload = errors.New("content: malformed upstream payload")
	ErrEmptyResult     = errors.New("content: upstream returned no data")
	ErrNoCompleter     = errors.New("content: language model is not configured")
	ErrNoJSONArray     = errors.New("content: no JSON array in model response")
	ErrMalformedNews   = errors.New("content: malformed news items")
)
