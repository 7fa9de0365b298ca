// Package kerr defines the error-kind taxonomy of the engine: the manifest
// reader, loader, converter, csr.Validate and the command driver wrap
// their failures into one of the five kinds below so that a driver can map
// a failure straight onto an exit code without inspecting error strings.
// The fabric and the distributed passes return no errors.
package kerr

import (
	"golang.org/x/xerrors"
)

// Kind classifies a failure the way the design separates them: IO failures
// are about the filesystem, Deserialize about malformed on-disk structure,
// Allocation and Runtime are the only two failure points the core itself
// can hit, and Assumption marks a violated precondition caught by a debug
// assertion.
type Kind int

const (
	// IO covers file open/read/write failures in the loader and converter.
	IO Kind = iota
	// Deserialize covers malformed manifests, out-of-range byte widths,
	// and CSR monotonicity violations detected while parsing.
	Deserialize
	// Allocation covers buffer allocation failures.
	Allocation
	// Assumption covers a violated precondition, e.g. an edge destination
	// id at or beyond n.
	Assumption
	// Runtime covers unexpected collective/transport failures inside the
	// core.
	Runtime
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Deserialize:
		return "deserialize"
	case Allocation:
		return "allocation"
	case Assumption:
		return "assumption"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Error is a kinded, wrapped error. It is always fatal: nothing in this
// module recovers from one, per the propagation policy — a Kind exists so
// the driver can print a one-line diagnostic and choose an exit code, not
// so callers can branch on it mid-pipeline.
type Error struct {
	Kind  Kind
	Phase string
	err   error
}

func (e *Error) Error() string {
	if e.Phase == "" {
		return xerrors.Errorf("%s: %w", e.Kind, e.err).Error()
	}
	return xerrors.Errorf("%s[%s]: %w", e.Kind, e.Phase, e.err).Error()
}

func (e *Error) Unwrap() error { return e.err }

// New constructs a kinded error, formatting like xerrors.Errorf.
func New(kind Kind, phase string, format string, args ...any) error {
	return &Error{Kind: kind, Phase: phase, err: xerrors.Errorf(format, args...)}
}

// Wrap attaches a kind and phase to an existing error without discarding
// its chain; xerrors.Is/As still see through it.
func Wrap(kind Kind, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Phase: phase, err: err}
}

// KindOf reports the Kind of err if it (or something it wraps) is a
// *Error, and false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ExitCode maps a Kind to the CLI's documented exit codes: 1 for
// graph/manifest errors (IO, Deserialize), 2 for runtime failures
// (Allocation, Runtime), 3 for assertion failures (Assumption).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	kind, ok := KindOf(err)
	if !ok {
		return 2
	}
	switch kind {
	case IO, Deserialize:
		return 1
	case Assumption:
		return 3
	default:
		return 2
	}
}
