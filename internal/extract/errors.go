package extract

import "fmt"

// ModelCallError wraps an opaque upstream failure from the model backend
// (timeout, rate limit, transport error). It is fatal and never retried.
type ModelCallError struct {
	Provider string
	Err      error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed (provider %s): %v", e.Provider, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// ModelOutputError indicates the model response was not a valid case
// record: either unparseable JSON or a schema violation. RawOutput
// carries the unmodified model text for diagnosis.
type ModelOutputError struct {
	RawOutput string
	Err       error
}

func (e *ModelOutputError) Error() string {
	return fmt.Sprintf("model returned invalid structured output: %v", e.Err)
}

func (e *ModelOutputError) Unwrap() error { return e.Err }
