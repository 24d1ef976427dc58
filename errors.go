// errors.go defines the public error kinds for the sondar package.

package sondar

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every internal stage is total: it never panics
// across a stage boundary and instead returns one of these (or wraps one
// in a StageError) so the Pipeline can apply the robustness clauses from
// the processing model.
var (
	// ErrInvalidConfig indicates a ChirpConfig with the chirp band outside
	// Nyquist, or a non-power-of-two size requested from the FFT.
	ErrInvalidConfig = errors.New("sondar: invalid configuration")

	// ErrEmptyFrame indicates a zero-length input frame. Stages that see
	// this return a zero-length output rather than treating it as fatal.
	ErrEmptyFrame = errors.New("sondar: empty frame")

	// ErrWeakSignal indicates the maximum magnitude of a frame fell below
	// the configured weakness threshold. The stage that detects this
	// returns its input unchanged; downstream state is left untouched.
	ErrWeakSignal = errors.New("sondar: weak signal")

	// ErrLowCorrelation indicates the Doppler search's best correlation
	// score fell below the reliability threshold. The caller overrides
	// the reported velocity to zero rather than treating this as fatal.
	ErrLowCorrelation = errors.New("sondar: low correlation")

	// ErrExecutorRejected indicates a captured frame was dropped because
	// the processing actor is saturated (one frame already in flight) or
	// shutting down.
	ErrExecutorRejected = errors.New("sondar: processing executor rejected frame")
)

// StageError wraps a fault raised inside a named pipeline stage. The
// Pipeline logs it, drops the current frame, and preserves PipelineState
// so the next frame can proceed — this is the StageFault error kind.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("sondar: stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// newStageError wraps err as a StageError attributed to stage, or returns
// nil if err is nil.
func newStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
