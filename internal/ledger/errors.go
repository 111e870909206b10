package ledger

import "fmt"

// UpstreamQueryError reports that the backing store was unreachable or
// returned rows this engine cannot interpret. The engine never retries;
// retry policy belongs to the transport layer in front of it.
type UpstreamQueryError struct {
	Op  string // which fetch failed, e.g. "lines", "accounts"
	Err error
}

func (e *UpstreamQueryError) Error() string {
	return fmt.Sprintf("upstream query %s: %v", e.Op, e.Err)
}

func (e *UpstreamQueryError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamQueryError{Op: op, Err: err}
}
