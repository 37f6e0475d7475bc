package recorder

// NoopRecorder discards all events. Used when no journal path is
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRequest(_ *RequestEvent) error { return nil }

func (n *NoopRecorder) Close() error { return nil }
