package credentials

import (
	"fmt"
	"strings"
)

// NotFoundError reports that no candidate client-secret file was usable.
// Checked holds every candidate that was probed, in priority order, so the
// caller can render one actionable diagnostic. Always recoverable; this
// package never terminates the process.
type NotFoundError struct {
	Checked []Candidate
}

// Error lists each checked candidate and why it was rejected.
func (e *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("no usable credentials file found; checked:")
	for _, cand := range e.Checked {
		b.WriteString(fmt.Sprintf("\n  [%d] %s (%s)", cand.Location.Rank, cand.Location.Path, rejection(cand)))
	}
	return b.String()
}

// rejection names why a candidate did not qualify.
func rejection(cand Candidate) string {
	switch {
	case !cand.Existed:
		return "does not exist"
	case !cand.Readable:
		return "not readable"
	default:
		return "ok"
	}
}

// InvalidProfileError reports a profile name unsafe for path construction.
// This is a programming error at the call site, not a retryable condition.
type InvalidProfileError struct {
	Profile string
	Reason  string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile %q: %s", e.Profile, e.Reason)
}
