package processor

import "fmt"

// MissingStreamError reports that the recording has no stream of the
// type needed to anchor event sample indices. Fatal to the conversion.
type MissingStreamError struct {
	StreamType string
}

func (e *MissingStreamError) Error() string {
	return fmt.Sprintf("no %s stream found in recording", e.StreamType)
}

// EmptySelectionError reports that the index filter, intersected with
// the continuous streams, selected nothing. Fatal to the conversion.
type EmptySelectionError struct {
	Continuous int
	Requested  []int
}

func (e *EmptySelectionError) Error() string {
	if len(e.Requested) == 0 {
		return "recording contains no continuous streams"
	}
	return fmt.Sprintf("stream selection %v matched none of the %d continuous streams", e.Requested, e.Continuous)
}

// MarkerStreamError reports a failure while extracting events from a
// single marker stream. Recoverable: the stream's events are dropped
// and the remaining marker streams are still processed.
type MarkerStreamError struct {
	Stream string
	Err    error
}

func (e *MarkerStreamError) Error() string {
	return fmt.Sprintf("marker stream %q: %v", e.Stream, e.Err)
}

func (e *MarkerStreamError) Unwrap() error {
	return e.Err
}
