package runner

// missingSplitError signals that no split name was supplied on a strict path.
type missingSplitError struct{}

func (missingSplitError) Error() string { return "split name is required" }

// ErrMissingSplit constructs a missingSplitError.
func ErrMissingSplit() error { return missingSplitError{} }

// IsMissingSplit reports whether err indicates an absent split name.
func IsMissingSplit(err error) bool {
	_, ok := err.(missingSplitError)
	return ok
}

// subprocessFailureError wraps a failed inference invocation with the
// checkpoint it was running.
type subprocessFailureError struct {
	checkpoint string
	err        error
}

func (e subprocessFailureError) Error() string {
	return "inference failed for " + e.checkpoint + ": " + e.err.Error()
}

func (e subprocessFailureError) Unwrap() error { return e.err }

// ErrSubprocessFailure constructs a subprocessFailureError.
func ErrSubprocessFailure(checkpoint string, err error) error {
	return subprocessFailureError{checkpoint: checkpoint, err: err}
}

// IsSubprocessFailure reports whether err came from a failed invocation.
func IsSubprocessFailure(err error) bool {
	_, ok := err.(subprocessFailureError)
	return ok
}

// FailedCheckpoint returns the checkpoint of a subprocess failure, if any.
func FailedCheckpoint(err error) (string, bool) {
	if e, ok := err.(subprocessFailureError); ok {
		return e.checkpoint, true
	}
	return "", false
}
