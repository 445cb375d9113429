package shindan

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDomain is returned for locale strings that resolve to
	// no known ShindanMaker deployment.
	ErrUnknownDomain = errors.New("unknown shindanmaker domain")
	// ErrShindanNotFound is returned when the service reports that no
	// shindan exists under the requested id.
	ErrShindanNotFound = errors.New("shindan not found")
	// ErrTokenNotFound is returned when the shindan page carries no
	// anti-forgery token. Either the page layout changed or the page
	// is not a shindan form at all.
	ErrTokenNotFound = errors.New("anti-forgery token not found")
	// ErrSubmissionRejected is returned when the service answers a
	// submission with something other than a result page, usually the
	// input form served back after failed validation.
	ErrSubmissionRejected = errors.New("submission rejected by shindanmaker")
	// ErrParse is returned when a page is structurally unrecognizable,
	// e.g. the result container is missing entirely.
	ErrParse = errors.New("unrecognized page structure")
	// ErrRendererNotInitialized is returned by image operations on a
	// client that was never given a renderer.
	ErrRendererNotInitialized = errors.New("renderer not initialized")
	// ErrRender wraps failures reported by the attached renderer.
	ErrRender = errors.New("render failed")
)

// StatusError reports an unexpected http status from the service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}
