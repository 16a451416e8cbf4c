package hll

// Allocator is the host-provided scratch allocator whose lifetime is tied
// to one aggregation. FinalizePacked routes its result buffer through
// this instead of a bare make(), so a host backed by an arena/bump
// allocator can keep the sketch's bytes inside its own memory context.
type Allocator interface {
	Alloc(n int) []byte
}

// sliceAllocator is the default Allocator, used when a host doesn't need
// arena semantics.
type sliceAllocator struct{}

func (sliceAllocator) Alloc(n int) []byte { return make([]byte, n) }

// ErrorSink is the host-provided structured error-reporting channel.
// Every AggState method that can fail returns a Go error as usual; if an
// ErrorSink is configured, the same error is also reported through it,
// for hosts whose aggregate-function ABI expects errors pushed through
// their own reporting primitive rather than returned.
type ErrorSink interface {
	ReportError(err error)
}

func (a *AggState) report(err error) error {
	if err != nil && a.sink != nil {
		a.sink.ReportError(err)
	}
	return err
}

// AggOption configures an AggState at construction.
type AggOption func(*AggState)

// WithAllocator installs the Allocator used by FinalizePacked.
func WithAllocator(alloc Allocator) AggOption {
	return func(a *AggState) { a.alloc = alloc }
}

// WithErrorSink installs the ErrorSink errors are additionally reported
// to.
func WithErrorSink(sink ErrorSink) AggOption {
	return func(a *AggState) { a.sink = sink }
}

// AggState implements the aggregation lifecycle: Uninitialized (no
// Parameters known yet, distinct from a decoded Undefined sketch)
// progresses to a live SketchValue on first observation and stays there
// for the life of the reduction. The host owns AggState's memory:
// finalize methods never reset or free the state, so they may be called
// more than once.
type AggState struct {
	alloc Allocator
	sink  ErrorSink
	value *SketchValue // nil means Uninitialized
}

// NewAggState constructs an Uninitialized aggregation state.
func NewAggState(opts ...AggOption) *AggState {
	a := &AggState{alloc: sliceAllocator{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddToken folds one token into the aggregation. On first call it
// instantiates Empty with defaultParams (validated), becoming
// initialized; subsequent calls apply the live value's Add rule.
func (a *AggState) AddToken(token uint64, defaultParams Parameters) error {
	if a.value == nil {
		v, err := NewEmpty(defaultParams)
		if err != nil {
			return a.report(err)
		}
		a.value = v
	}

	a.value.Add(token)
	return nil
}

// UnionBytes decodes encoded and folds it into the aggregation. On first
// call it adopts the decoded sketch's Parameters, becoming initialized as
// a copy of it; subsequent calls require the decoded sketch's Parameters
// to match the live value's exactly, failing ErrIncompatible (wraps
// ErrData) otherwise.
func (a *AggState) UnionBytes(encoded []byte) error {
	other, err := DecodeSketch(encoded)
	if err != nil {
		return a.report(err)
	}

	if a.value == nil {
		a.value = other
		return nil
	}

	if err := a.value.Union(other); err != nil {
		return a.report(err)
	}
	return nil
}

// FinalizePacked serializes the current aggregation state, using cfg for
// the output version and Sparse/Dense selection. The second return value
// is false ("no result") when the state is still Uninitialized; the host
// maps that to a null value. Calling FinalizePacked again afterward is
// safe and returns the same result (the state is never reset or freed
// here).
func (a *AggState) FinalizePacked(cfg *Config) ([]byte, bool) {
	if a.value == nil {
		return nil, false
	}

	n := PackedSize(a.value, cfg)
	buf := a.alloc.Alloc(n)
	copy(buf, EncodeSketch(a.value, cfg))
	return buf, true
}

// FinalizeCardinality estimates the cardinality of the current
// aggregation state. The second return value is false ("no result") when
// the state is Uninitialized or holds a decoded Undefined sketch.
func (a *AggState) FinalizeCardinality() (float64, bool, error) {
	if a.value == nil {
		return 0, false, nil
	}

	v, ok, err := a.value.Cardinality()
	if err != nil {
		return 0, false, a.report(err)
	}
	return v, ok, nil
}
