// emission.go implements the emission actor: a time.Ticker-driven task
// that writes the pre-generated chirp buffer to the audio driver every
// emit_period_ms, independent of processing latency.

package sondar

import (
	"context"
	"time"
)

// runEmissionLoop emits chirp to driver once per period until ctx is
// canceled, then closes done. Emission errors are logged and otherwise
// ignored — a dropped chirp emission does not stop the session, matching
// the "processing may take up to, but must not exceed, one emission
// period on average" tolerance in the concurrency model.
func runEmissionLoop(ctx context.Context, driver AudioIO, chirp []int16, period time.Duration, onError func(error), done chan<- struct{}) {
	defer close(done)

	samples := make(RealFrame, len(chirp))
	copy(samples, chirp)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := driver.Emit(samples); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
