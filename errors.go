package comicbubble

import "errors"

var (
	// ErrFontUnavailable is returned when the bubble font cannot be read or parsed.
	ErrFontUnavailable = errors.New("font unavailable")
	// ErrInvalidSpec is returned for anchors, canvases, styles or scenes that cannot be rendered.
	ErrInvalidSpec = errors.New("invalid spec")
)
