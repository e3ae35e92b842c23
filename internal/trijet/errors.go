package trijet

import "fmt"

// InsufficientJetsError reports an event that reached the selector with
// fewer than the three jets the upstream contract guarantees. This is a
// precondition violation: the event's computation fails loudly rather
// than emitting a sentinel result, and the caller decides whether to
// abort the batch or skip the event at a higher layer.
type InsufficientJetsError struct {
	EventIndex int
	JetCount   int
}

func (e *InsufficientJetsError) Error() string {
	return fmt.Sprintf("insufficient jets: event %d has %d jets, need at least 3", e.EventIndex, e.JetCount)
}
