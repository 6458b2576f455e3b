package composer

import "errors"

// Closed error taxonomy. Every error returned by this package wraps
// exactly one of these sentinels, so callers branch with errors.Is
// instead of inspecting message text.
var (
	// ErrInput marks user-input problems: empty payload, bad color string.
	ErrInput = errors.New("input error")
	// ErrLogo marks logo problems: unreadable, undecodable, or failed compositing.
	ErrLogo = errors.New("logo error")
	// ErrIO marks filesystem problems while persisting the image.
	ErrIO = errors.New("io error")
)
