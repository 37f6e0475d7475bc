package recorder

// RequestEvent is one dispatched operation, journaled for audit.
// Computed results are never stored, only the fact and outcome of the
// request.
type RequestEvent struct {
	Op         string
	Params     string
	DurationMs int64
	Err        string
}

// Recorder journals dispatched requests.
type Recorder interface {
	RecordRequest(evt *RequestEvent) error
	Close() error
}
