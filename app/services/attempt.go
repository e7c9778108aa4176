package services

// Attempt is the result of a best-effort operation. Callers are free to
// discard it: a failed Attempt has already been logged and counted.
type Attempt struct {
	Op  string
	Err error
}

// OK reports whether the operation succeeded.
func (a Attempt) OK() bool { return a.Err == nil }
