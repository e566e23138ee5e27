package boundary

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
)

// State is the translator's position in an entry-point bracket.
type State uint8

const (
	StateEntered State = iota
	StateRunning
	StateNormalReturn
	StateHostErrorCaught
	StateNativeExceptionCaught
	StateExited
)

func (s State) String() string {
	switch s {
	case StateEntered:
		return "entered"
	case StateRunning:
		return "running"
	case StateNormalReturn:
		return "normal_return"
	case StateHostErrorCaught:
		return "host_error_caught"
	case StateNativeExceptionCaught:
		return "native_exception_caught"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Trace observes state transitions of one entry-point bracket.
type Trace func(name string, s State)

// Option configures a Call bracket.
type Option func(*translator)

// WithTrace installs a transition observer. Used by tests and diagnostics.
func WithTrace(tr Trace) Option {
	return func(t *translator) { t.trace = tr }
}

type translator struct {
	api   hostapi.API
	name  string
	trace Trace
	log   *zap.Logger
}

func (t *translator) to(s State) {
	if t.trace != nil {
		t.trace(t.name, s)
	}
	t.log.Debug("boundary transition",
		zap.String("entry", t.name),
		zap.Stringer("state", s),
	)
}

// depth tracks nesting of active brackets on the single logical stack.
// Registry mutation is only legitimate while Active; the check is advisory
// because the bracket itself is the enforced calling convention.
var depth int

// Active reports whether any entry-point bracket is currently open.
func Active() bool {
	return depth > 0
}

// Call is the per-entry-point bracket every host-callable function must run
// inside; it is the calling convention, not an optional style.
//
// Call installs the unwind barrier, runs fn, and translates the outcome:
//
//   - fn returns a value: the value goes back to the host (NormalReturn).
//   - a host error signal (or an error of KindHostError that native code
//     chose not to handle) escapes fn: it is converted back into a host
//     error carrying the same message (HostErrorCaught).
//   - any other native error or panic escapes fn: its message is captured
//     and reported as a host error (NativeExceptionCaught).
//
// A native panic never crosses into host frames, and a host signal never
// crosses native frames without the deferred cleanup of those frames
// running first.
func Call(api hostapi.API, name string, fn func() (hostapi.Ref, error), opts ...Option) (ref hostapi.Ref, sig *hostapi.Signal) {
	t := &translator{api: api, name: name, log: Logger()}
	for _, opt := range opts {
		opt(t)
	}

	t.to(StateEntered)
	depth++
	defer func() {
		depth--
		t.to(StateExited)
	}()

	var (
		err    error
		rawSig *hostapi.Signal
	)
	func() {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			switch v := rec.(type) {
			case *hostapi.Signal:
				rawSig = v
			case error:
				err = v
			default:
				err = errors.NativePanic(v)
			}
		}()
		t.to(StateRunning)
		ref, err = fn()
	}()

	switch {
	case rawSig != nil:
		// The raw host signal reached the barrier; defers in every
		// unwound native frame have already run.
		t.to(StateHostErrorCaught)
		return hostapi.Invalid, rawSig

	case err != nil:
		if isHostError(err) {
			t.to(StateHostErrorCaught)
		} else {
			t.to(StateNativeExceptionCaught)
		}
		return hostapi.Invalid, &hostapi.Signal{Msg: messageOf(err)}

	default:
		t.to(StateNormalReturn)
		return ref, nil
	}
}

// isHostError reports whether err originated as a host error signal and is
// merely traveling through native frames as an ordinary error.
func isHostError(err error) bool {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Kind == errors.KindHostError
	}
	return false
}

// messageOf extracts the text reported to the host, verbatim for
// structured bridge errors.
func messageOf(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
