package newsletter

import "errors"

var (
	ErrTemplates          = errors.New("newsletter: templates are invalid")
	ErrFetchSubscribers   = errors.New("newsletter: failed to fetch subscribers")
	ErrContentUnavailable = errors.New("newsletter: content unavailable")
)
